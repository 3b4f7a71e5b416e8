// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/wedsite-go/internal/cache"
	"github.com/olegiv/wedsite-go/internal/seo"
	"github.com/olegiv/wedsite-go/internal/store"
)

const (
	sitemapCacheKey = "seo:sitemap"
	robotsCacheKey  = "seo:robots"
	seoCacheTTL     = time.Hour
)

// SEOHandler serves sitemap.xml and robots.txt, built from the published
// document set and cached for an hour.
type SEOHandler struct {
	queries *store.Queries
	cache   cache.Cacher
	siteURL string
	robots  seo.RobotsConfig
}

// NewSEOHandler creates a handler for the crawler-facing endpoints.
func NewSEOHandler(queries *store.Queries, c cache.Cacher, siteURL string, robots seo.RobotsConfig) *SEOHandler {
	return &SEOHandler{
		queries: queries,
		cache:   c,
		siteURL: siteURL,
		robots:  robots,
	}
}

// Sitemap handles GET /sitemap.xml requests.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := h.cache.Get(ctx, sitemapCacheKey); err == nil {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(cached)
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("sitemap cache read failed", "error", err, "category", "cache")
	}

	rows, err := h.queries.ListPublishedSitemapEntries(ctx)
	if err != nil {
		slog.Error("failed to list sitemap entries", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	entries := make([]seo.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, seo.Entry{
			Type:      row.Type,
			Slug:      row.Slug,
			UpdatedAt: row.UpdatedAt,
		})
	}

	xml, err := seo.GenerateSitemap(h.siteURL, entries)
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(ctx, sitemapCacheKey, xml, seoCacheTTL); err != nil {
		slog.Warn("sitemap cache write failed", "error", err, "category", "cache")
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(xml)
}

// Robots handles GET /robots.txt requests.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := h.cache.Get(ctx, robotsCacheKey); err == nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(cached)
		return
	}

	body := seo.NewRobotsBuilder(h.robots).Build()

	if err := h.cache.Set(ctx, robotsCacheKey, []byte(body), seoCacheTTL); err != nil {
		slog.Warn("robots cache write failed", "error", err, "category", "cache")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// InvalidateSitemap drops the cached sitemap so the next request rebuilds it.
// Called after publish operations.
func (h *SEOHandler) InvalidateSitemap(ctx context.Context) {
	if err := h.cache.Delete(ctx, sitemapCacheKey); err != nil {
		slog.Warn("sitemap cache invalidation failed", "error", err, "category", "cache")
	}
}
