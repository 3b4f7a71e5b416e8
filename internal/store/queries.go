// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access for documents, media and events.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
	"github.com/olegiv/wedsite-go/internal/util"
)

// DBTX is the interface satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// New creates a Queries instance.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const documentColumns = `id, type, slug, title_en, title_vi, excerpt_en, excerpt_vi,
	featured_image, location, listing_priority, blocks, status,
	published_at, scheduled_at, created_at, updated_at`

// scanDocument scans one documents row.
func scanDocument(row interface{ Scan(dest ...any) error }) (model.Document, error) {
	var d model.Document
	var blocks string
	err := row.Scan(
		&d.ID, &d.Type, &d.Slug,
		&d.Title.EN, &d.Title.VI,
		&d.Excerpt.EN, &d.Excerpt.VI,
		&d.FeaturedImage, &d.Location, &d.ListingPriority,
		&blocks, &d.Status,
		&d.PublishedAt, &d.ScheduledAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return model.Document{}, err
	}
	d.Blocks = json.RawMessage(blocks)
	return d, nil
}

// CreateDocumentParams holds the fields for creating a document.
type CreateDocumentParams struct {
	Type            string
	Slug            string
	Title           model.LocalizedText
	Excerpt         model.LocalizedText
	FeaturedImage   string
	Location        string
	ListingPriority sql.NullInt64
	Blocks          json.RawMessage
	Status          string
	PublishedAt     sql.NullTime
	ScheduledAt     sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateDocument inserts a new document and returns it. When Slug is
// empty it is derived from the English title (falling back to the
// Vietnamese one), transliterated to ASCII.
func (q *Queries) CreateDocument(ctx context.Context, p CreateDocumentParams) (model.Document, error) {
	if p.Slug == "" {
		title := p.Title.EN
		if title == "" {
			title = p.Title.VI
		}
		p.Slug = util.Slugify(title)
	}
	if !util.IsValidSlug(p.Slug) {
		return model.Document{}, fmt.Errorf("invalid slug %q", p.Slug)
	}
	blocks := p.Blocks
	if len(blocks) == 0 {
		blocks = json.RawMessage("[]")
	}
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO documents (
			type, slug, title_en, title_vi, excerpt_en, excerpt_vi,
			featured_image, location, listing_priority, blocks, status,
			published_at, scheduled_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Type, p.Slug, p.Title.EN, p.Title.VI, p.Excerpt.EN, p.Excerpt.VI,
		p.FeaturedImage, p.Location, p.ListingPriority, string(blocks), p.Status,
		p.PublishedAt, p.ScheduledAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return model.Document{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Document{}, err
	}
	return q.GetDocumentByID(ctx, id)
}

// GetDocumentByID fetches a document in any status.
func (q *Queries) GetDocumentByID(ctx context.Context, id int64) (model.Document, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// GetPublishedDocumentBySlug fetches a published document by type and slug.
// Unpublished documents return sql.ErrNoRows: the store is the single
// enforcement point for the published flag on public reads.
func (q *Queries) GetPublishedDocumentBySlug(ctx context.Context, docType, slug string) (model.Document, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE type = ? AND slug = ? AND status = ?`,
		docType, slug, model.DocumentStatusPublished)
	return scanDocument(row)
}

// ListPublishedDocuments lists published documents of one type,
// newest created first.
func (q *Queries) ListPublishedDocuments(ctx context.Context, docType string) ([]model.Document, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE type = ? AND status = ?
		 ORDER BY created_at DESC, id DESC`,
		docType, model.DocumentStatusPublished)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateDocumentParams holds the fields for updating a document.
type UpdateDocumentParams struct {
	ID              int64
	Slug            string
	Title           model.LocalizedText
	Excerpt         model.LocalizedText
	FeaturedImage   string
	Location        string
	ListingPriority sql.NullInt64
	Blocks          json.RawMessage
	Status          string
	PublishedAt     sql.NullTime
	ScheduledAt     sql.NullTime
	UpdatedAt       time.Time
}

// UpdateDocument updates an existing document and returns the new row.
func (q *Queries) UpdateDocument(ctx context.Context, p UpdateDocumentParams) (model.Document, error) {
	blocks := p.Blocks
	if len(blocks) == 0 {
		blocks = json.RawMessage("[]")
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE documents SET
			slug = ?, title_en = ?, title_vi = ?, excerpt_en = ?, excerpt_vi = ?,
			featured_image = ?, location = ?, listing_priority = ?, blocks = ?,
			status = ?, published_at = ?, scheduled_at = ?, updated_at = ?
		WHERE id = ?`,
		p.Slug, p.Title.EN, p.Title.VI, p.Excerpt.EN, p.Excerpt.VI,
		p.FeaturedImage, p.Location, p.ListingPriority, string(blocks),
		p.Status, p.PublishedAt, p.ScheduledAt, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return model.Document{}, err
	}
	return q.GetDocumentByID(ctx, p.ID)
}

// PublishDocument marks a document as published at the given time and
// clears any pending schedule.
func (q *Queries) PublishDocument(ctx context.Context, id int64, publishedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, published_at = ?, scheduled_at = NULL, updated_at = ?
		WHERE id = ?`,
		model.DocumentStatusPublished, publishedAt, publishedAt, id)
	return err
}

// DeleteDocument removes a document.
func (q *Queries) DeleteDocument(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

// ListDueScheduledDocuments lists drafts whose scheduled publish time has passed.
func (q *Queries) ListDueScheduledDocuments(ctx context.Context, now time.Time) ([]model.Document, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?
		 ORDER BY scheduled_at`,
		model.DocumentStatusDraft, now)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// SitemapEntry is the subset of a document needed for sitemap generation.
type SitemapEntry struct {
	Type      string
	Slug      string
	UpdatedAt time.Time
}

// ListPublishedSitemapEntries lists type+slug for every published document.
func (q *Queries) ListPublishedSitemapEntries(ctx context.Context) ([]SitemapEntry, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT type, slug, updated_at FROM documents
		 WHERE status = ? ORDER BY type, slug`,
		model.DocumentStatusPublished)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []SitemapEntry
	for rows.Next() {
		var e SitemapEntry
		if err := rows.Scan(&e.Type, &e.Slug, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
