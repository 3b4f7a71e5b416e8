// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for locale resolution,
// rate limiting and response headers.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/wedsite-go/internal/model"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyLocale is the context key for the resolved locale.
const ContextKeyLocale ContextKey = "locale"

// Language resolves the {lang} URL parameter into a locale and stores it in
// the request context. Requests with an unsupported language segment get a
// 404: /fr/journal is not a page of this site.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		langParam := chi.URLParam(r, "lang")
		locale, ok := model.ParseLocale(strings.ToLower(langParam))
		if !ok {
			http.NotFound(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyLocale, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLocale retrieves the locale from the request context, falling back to
// the default locale when the middleware did not run.
func GetLocale(r *http.Request) model.Locale {
	locale, ok := r.Context().Value(ContextKeyLocale).(model.Locale)
	if !ok {
		return model.DefaultLocale
	}
	return locale
}
