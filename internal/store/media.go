// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
)

// scanMedia scans one media row.
func scanMedia(row interface{ Scan(dest ...any) error }) (model.Media, error) {
	var m model.Media
	err := row.Scan(
		&m.ID, &m.UUID, &m.Filename, &m.MimeType, &m.Size,
		&m.Width, &m.Height, &m.Alt.EN, &m.Alt.VI,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

const mediaColumns = `id, uuid, filename, mime_type, size, width, height, alt_en, alt_vi, created_at, updated_at`

// CreateMediaParams holds the fields for registering an uploaded file.
type CreateMediaParams struct {
	UUID      string
	Filename  string
	MimeType  string
	Size      int64
	Width     sql.NullInt64
	Height    sql.NullInt64
	Alt       model.LocalizedText
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateMedia inserts a media row and returns it.
func (q *Queries) CreateMedia(ctx context.Context, p CreateMediaParams) (model.Media, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO media (uuid, filename, mime_type, size, width, height, alt_en, alt_vi, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UUID, p.Filename, p.MimeType, p.Size, p.Width, p.Height,
		p.Alt.EN, p.Alt.VI, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return model.Media{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Media{}, err
	}
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	return scanMedia(row)
}

// GetMediaByUUID fetches a media row by its storage UUID.
func (q *Queries) GetMediaByUUID(ctx context.Context, uuid string) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE uuid = ?`, uuid)
	return scanMedia(row)
}

// ListMedia lists media rows, newest first.
func (q *Queries) ListMedia(ctx context.Context, limit, offset int) ([]model.Media, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteMedia removes a media row; variants cascade.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}

// CreateMediaVariantParams holds the fields for a generated image variant.
type CreateMediaVariantParams struct {
	MediaID   int64
	Type      string
	Width     int64
	Height    int64
	Size      int64
	CreatedAt time.Time
}

// CreateMediaVariant inserts a variant row.
func (q *Queries) CreateMediaVariant(ctx context.Context, p CreateMediaVariantParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO media_variants (media_id, type, width, height, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.MediaID, p.Type, p.Width, p.Height, p.Size, p.CreatedAt)
	return err
}

// ListMediaVariants lists the variants generated for a media item.
func (q *Queries) ListMediaVariants(ctx context.Context, mediaID int64) ([]model.MediaVariant, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, media_id, type, width, height, size, created_at
		 FROM media_variants WHERE media_id = ? ORDER BY type`,
		mediaID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var variants []model.MediaVariant
	for rows.Next() {
		var v model.MediaVariant
		if err := rows.Scan(&v.ID, &v.MediaID, &v.Type, &v.Width, &v.Height, &v.Size, &v.CreatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
