// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/wedsite-go/internal/i18n"
	"github.com/olegiv/wedsite-go/internal/imgurl"
	"github.com/olegiv/wedsite-go/internal/middleware"
	"github.com/olegiv/wedsite-go/internal/model"
	"github.com/olegiv/wedsite-go/internal/render"
	"github.com/olegiv/wedsite-go/internal/service"
	"github.com/olegiv/wedsite-go/internal/viewmodel"
)

// ContentHandler serves published documents: journal listings and details,
// composed pages, blog posts and testimonials.
type ContentHandler struct {
	content  *service.ContentService
	pipeline *render.Pipeline
	images   *imgurl.Resolver
}

// NewContentHandler creates a content handler.
func NewContentHandler(content *service.ContentService, images *imgurl.Resolver) *ContentHandler {
	return &ContentHandler{
		content:  content,
		pipeline: render.New(images),
		images:   images,
	}
}

// DocumentSummary is the listing representation of a document.
type DocumentSummary struct {
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Location      string     `json:"location,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// summarize resolves a document's listing fields for one locale.
func (h *ContentHandler) summarize(doc *model.Document, locale model.Locale) DocumentSummary {
	s := DocumentSummary{
		Slug:          doc.Slug,
		Title:         doc.Title.Resolve(locale),
		Excerpt:       doc.Excerpt.Resolve(locale),
		FeaturedImage: h.images.Resolve(doc.FeaturedImage),
		Location:      doc.Location,
	}
	if doc.PublishedAt.Valid {
		t := doc.PublishedAt.Time
		s.PublishedAt = &t
	}
	return s
}

// ListJournals handles GET /{lang}/journal.
// Query parameters: location (venue filter, default "all") and page.
// Changing the filter resets pagination, so a page parameter combined with
// a filter always applies to the filtered listing.
func (h *ContentHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	listing := viewmodel.NewListing()
	if loc := r.URL.Query().Get("location"); loc != "" {
		listing.SetFilter(loc)
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid page parameter")
			return
		}
		listing.SetPage(page)
	}

	docs := h.content.ListJournals(r.Context())
	docs = service.FilterByLocation(docs, listing.Location)

	totalPages := viewmodel.TotalPages(len(docs))
	if listing.CurrentPage > totalPages {
		listing.SetPage(totalPages)
	}
	start, end := viewmodel.PageBounds(listing.CurrentPage, len(docs))

	items := make([]DocumentSummary, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, h.summarize(&docs[i], locale))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"location":    listing.Location,
		"locations":   locationOptions(locale),
		"page":        listing.CurrentPage,
		"total_pages": totalPages,
		"total_items": len(docs),
	})
}

// LocationOption is one selectable venue filter with its localized label.
type LocationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func locationOptions(locale model.Locale) []LocationOption {
	opts := make([]LocationOption, 0, len(model.JournalLocations))
	for _, loc := range model.JournalLocations {
		opts = append(opts, LocationOption{
			Value: loc,
			Label: i18n.LocationLabel(locale, loc),
		})
	}
	return opts
}

// getDocument fetches one published document and writes the rendered
// response, or a 404 when the slug is unknown or the document is a draft.
func (h *ContentHandler) getDocument(w http.ResponseWriter, r *http.Request, docType string) {
	locale := middleware.GetLocale(r)
	slug := chi.URLParam(r, "slug")

	doc, err := h.content.GetPublished(r.Context(), docType, slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		slog.Error("document fetch failed", "type", docType, "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := h.pipeline.Resolve(doc.Blocks, locale)
	if result.Skipped > 0 {
		slog.Warn("document has unrenderable blocks", "type", docType, "slug", slug, "skipped", result.Skipped)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"document": h.summarize(doc, locale),
		"blocks":   result.Records,
		"images":   result.FlatImages,
	})
}

// GetJournal handles GET /{lang}/journal/{slug}.
func (h *ContentHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, model.DocumentTypeJournal)
}

// GetPage handles GET /{lang}/pages/{slug}.
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, model.DocumentTypePage)
}

// ListPosts handles GET /{lang}/posts.
func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	h.listSimple(w, r, model.DocumentTypePost)
}

// GetPost handles GET /{lang}/posts/{slug}.
func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, model.DocumentTypePost)
}

// ListTestimonials handles GET /{lang}/testimonials. Testimonials embed
// their quote blocks directly, so the listing resolves each one.
func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	docs := h.content.ListPublished(r.Context(), model.DocumentTypeTestimonial)

	type testimonialItem struct {
		DocumentSummary
		Blocks []render.Record `json:"blocks"`
	}

	items := make([]testimonialItem, 0, len(docs))
	for i := range docs {
		result := h.pipeline.Resolve(docs[i].Blocks, locale)
		items = append(items, testimonialItem{
			DocumentSummary: h.summarize(&docs[i], locale),
			Blocks:          result.Records,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items": items,
	})
}

// listSimple writes an unfiltered listing of one document type.
func (h *ContentHandler) listSimple(w http.ResponseWriter, r *http.Request, docType string) {
	locale := middleware.GetLocale(r)

	docs := h.content.ListPublished(r.Context(), docType)
	items := make([]DocumentSummary, 0, len(docs))
	for i := range docs {
		items = append(items, h.summarize(&docs[i], locale))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items": items,
	})
}
