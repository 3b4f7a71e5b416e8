// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imgurl resolves stored image references to fetchable URLs.
// A reference is either an absolute URL (returned unchanged) or a path
// relative to the configured storage base. Sized requests are routed
// through an external resizing proxy; this package only builds the
// request URL.
package imgurl

import (
	"net/url"
	"strconv"
	"strings"
)

// Resolver builds public image URLs from stored references.
// All methods are pure and total: every input string maps to exactly one
// output string.
type Resolver struct {
	baseURL       string
	proxyTemplate string
}

// New creates a Resolver.
// baseURL is the object-storage public root (e.g. https://cdn.example.com).
// proxyTemplate is the resizing-proxy URL template with {url}, {width} and
// {height} placeholders; when empty, sized requests return the plain URL.
func New(baseURL, proxyTemplate string) *Resolver {
	return &Resolver{
		baseURL:       strings.TrimRight(baseURL, "/"),
		proxyTemplate: proxyTemplate,
	}
}

// Resolve maps a stored image reference to a fully-qualified URL.
// Absolute URLs pass through unchanged; path references are joined to the
// storage base; empty input resolves to "".
func (r *Resolver) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if isAbsolute(ref) {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return r.baseURL + ref
	}
	return r.baseURL + "/" + ref
}

// ResolveSized maps a stored image reference to a resizing-proxy URL
// requesting the given dimensions. Falls back to Resolve when no proxy is
// configured or the dimensions are not positive.
func (r *Resolver) ResolveSized(ref string, width, height int) string {
	resolved := r.Resolve(ref)
	if resolved == "" {
		return ""
	}
	if r.proxyTemplate == "" || width <= 0 || height <= 0 {
		return resolved
	}

	out := r.proxyTemplate
	out = strings.ReplaceAll(out, "{url}", url.QueryEscape(resolved))
	out = strings.ReplaceAll(out, "{width}", strconv.Itoa(width))
	out = strings.ReplaceAll(out, "{height}", strconv.Itoa(height))
	return out
}

// isAbsolute reports whether ref already carries a URL scheme.
func isAbsolute(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != ""
}
