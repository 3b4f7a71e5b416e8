// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service contains the application services sitting between the
// HTTP handlers and the store.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/olegiv/wedsite-go/internal/cache"
	"github.com/olegiv/wedsite-go/internal/model"
	"github.com/olegiv/wedsite-go/internal/store"
)

// ErrNotFound is returned when a requested document does not exist or is
// not published.
var ErrNotFound = errors.New("document not found")

// ContentService serves published documents to the public site and applies
// the journal listing rules: priority ordering, venue filtering and
// pagination.
type ContentService struct {
	queries *store.Queries
	docs    *cache.DocumentCache
}

// NewContentService creates a content service backed by db and cached
// through c.
func NewContentService(db *sql.DB, c cache.Cacher, ttl time.Duration) *ContentService {
	return &ContentService{
		queries: store.New(db),
		docs:    cache.NewDocumentCache(c, ttl),
	}
}

// GetPublished returns one published document by type and slug.
// Drafts and missing slugs both surface as ErrNotFound.
func (s *ContentService) GetPublished(ctx context.Context, docType, slug string) (*model.Document, error) {
	doc, err := s.docs.GetDocument(ctx, docType, slug, func() (*model.Document, error) {
		d, err := s.queries.GetPublishedDocumentBySlug(ctx, docType, slug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("fetching %s %q: %w", docType, slug, err)
		}
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListPublished returns every published document of one type. Listing
// fetches degrade gracefully: on a store error the service logs a warning
// and returns an empty slice so listing pages render with no items rather
// than failing.
func (s *ContentService) ListPublished(ctx context.Context, docType string) []model.Document {
	docs, err := s.docs.GetList(ctx, docType, func() ([]model.Document, error) {
		return s.queries.ListPublishedDocuments(ctx, docType)
	})
	if err != nil {
		slog.Warn("document listing failed", "type", docType, "error", err)
		return nil
	}
	return docs
}

// ListJournals returns the published journal entries in listing order:
// prioritized entries first in ascending priority, then the rest newest
// first. The sort is stable so equal keys keep their store order.
func (s *ContentService) ListJournals(ctx context.Context) []model.Document {
	docs := s.ListPublished(ctx, model.DocumentTypeJournal)
	SortJournals(docs)
	return docs
}

// SortJournals orders journal entries for listing pages: entries with a
// listing priority come first, ascending; the remainder follow newest
// created first.
func SortJournals(docs []model.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		switch {
		case a.HasPriority() && b.HasPriority():
			return a.ListingPriority.Int64 < b.ListingPriority.Int64
		case a.HasPriority():
			return true
		case b.HasPriority():
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

// FilterByLocation returns the entries matching a venue filter. The "all"
// sentinel and unknown values return the input unchanged.
func FilterByLocation(docs []model.Document, location string) []model.Document {
	if !model.IsValidLocation(location) {
		return docs
	}
	filtered := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if d.Location == location {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Publish marks a document published now and invalidates its cache entries.
func (s *ContentService) Publish(ctx context.Context, doc *model.Document, now time.Time) error {
	if err := s.queries.PublishDocument(ctx, doc.ID, now); err != nil {
		return fmt.Errorf("publishing document %d: %w", doc.ID, err)
	}
	if err := s.docs.Invalidate(ctx, doc.Type, doc.Slug); err != nil {
		slog.Warn("cache invalidation failed", "type", doc.Type, "slug", doc.Slug, "error", err)
	}
	return nil
}

// PublishDue publishes every draft whose scheduled time has passed.
// Returns the number of documents published.
func (s *ContentService) PublishDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.queries.ListDueScheduledDocuments(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listing due documents: %w", err)
	}

	published := 0
	for i := range due {
		if err := s.Publish(ctx, &due[i], now); err != nil {
			slog.Error("scheduled publish failed", "id", due[i].ID, "slug", due[i].Slug, "error", err)
			continue
		}
		slog.Info("scheduled document published", "type", due[i].Type, "slug", due[i].Slug)
		published++
	}
	return published, nil
}
