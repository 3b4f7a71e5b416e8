// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/wedsite-go/internal/model"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	// htmlSanitizer strips dangerous markup from editor-authored rich text.
	htmlSanitizer = bluemonday.UGCPolicy()
)

// RichText renders an editor-authored markdown string to sanitized HTML.
// A markdown failure degrades to the sanitized source text rather than
// dropping the content.
func RichText(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(src), &buf); err != nil {
		slog.Warn("rich text conversion failed", "category", model.EventCategoryContent, "error", err)
		return htmlSanitizer.Sanitize(src)
	}
	return htmlSanitizer.Sanitize(buf.String())
}

// localizedRichText resolves a LocalizedText for the locale and renders the
// result as rich HTML. Empty resolution renders nothing.
func localizedRichText(t model.LocalizedText, locale model.Locale) string {
	return RichText(t.Resolve(locale))
}
