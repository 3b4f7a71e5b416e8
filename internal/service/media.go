// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/wedsite-go/internal/imaging"
	"github.com/olegiv/wedsite-go/internal/model"
	"github.com/olegiv/wedsite-go/internal/store"
)

// Upload limits
const (
	MaxUploadSize    = 20 * 1024 * 1024 // 20MB
	DefaultUploadDir = "./uploads"
)

// UploadResult contains the result of a media upload.
type UploadResult struct {
	Media    model.Media
	Variants []model.MediaVariant
}

// MediaService handles photography uploads: originals, derived variants
// and their database records.
type MediaService struct {
	queries   *store.Queries
	processor *imaging.Processor
	uploadDir string
}

// NewMediaService creates a new media service.
func NewMediaService(db *sql.DB, uploadDir string) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{
		queries:   store.New(db),
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates, processes and stores an uploaded image together with
// its bilingual alt text.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, alt model.LocalizedText) (*UploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	// Sniff the MIME type from content, never trust the header alone.
	mimeType := s.processor.DetectMimeType(data)
	if !model.IsSupportedMimeType(mimeType) {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	fileUUID := uuid.New().String()
	filename := sanitizeFilename(header.Filename)

	original, err := s.processor.ProcessOriginal(bytes.NewReader(data), fileUUID, filename)
	if err != nil {
		return nil, fmt.Errorf("processing image: %w", err)
	}

	now := time.Now()
	media, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
		UUID:      fileUUID,
		Filename:  filename,
		MimeType:  original.MimeType,
		Size:      original.Size,
		Width:     sql.NullInt64{Int64: int64(original.Width), Valid: true},
		Height:    sql.NullInt64{Int64: int64(original.Height), Valid: true},
		Alt:       alt,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		// Clean up uploaded files on error
		_ = s.processor.DeleteMediaFiles(fileUUID)
		return nil, fmt.Errorf("creating media record: %w", err)
	}

	result := UploadResult{Media: media}

	variants, err := s.processor.CreateAllVariants(original.FilePath, fileUUID, filename)
	if err != nil {
		// The original is stored; missing variants are recoverable
		slog.Warn("image variant generation incomplete", "uuid", fileUUID, "error", err)
	}

	for _, v := range variants {
		err := s.queries.CreateMediaVariant(ctx, store.CreateMediaVariantParams{
			MediaID:   media.ID,
			Type:      v.Type,
			Width:     int64(v.Width),
			Height:    int64(v.Height),
			Size:      v.Size,
			CreatedAt: now,
		})
		if err != nil {
			slog.Warn("storing variant record failed", "uuid", fileUUID, "variant", v.Type, "error", err)
			continue
		}
		result.Variants = append(result.Variants, model.MediaVariant{
			MediaID:   media.ID,
			Type:      v.Type,
			Width:     int64(v.Width),
			Height:    int64(v.Height),
			Size:      v.Size,
			CreatedAt: now,
		})
	}

	return &result, nil
}

// Delete removes a media item, its variants and its files.
func (s *MediaService) Delete(ctx context.Context, mediaUUID string) error {
	media, err := s.queries.GetMediaByUUID(ctx, mediaUUID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("fetching media: %w", err)
	}

	// Variant rows cascade with the media row
	if err := s.queries.DeleteMedia(ctx, media.ID); err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}

	if err := s.processor.DeleteMediaFiles(media.UUID); err != nil {
		// DB records are already gone; files are orphaned but harmless
		slog.Warn("deleting media files failed", "uuid", media.UUID, "error", err)
	}

	return nil
}

// URL returns the public URL path for a media item and variant.
// An empty or "original" variant points at the stored original.
func (s *MediaService) URL(media model.Media, variant string) string {
	if variant == "" || variant == "original" {
		return fmt.Sprintf("/uploads/originals/%s/%s", media.UUID, media.Filename)
	}
	return fmt.Sprintf("/uploads/%s/%s/%s", variant, media.UUID, media.Filename)
}

// sanitizeFilename strips path components and characters that are unsafe
// in URLs or filesystems.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	replacer := strings.NewReplacer(
		" ", "-",
		"'", "",
		"\"", "",
		"<", "",
		">", "",
		"&", "",
		"#", "",
		"?", "",
		"%", "",
	)
	filename = replacer.Replace(filename)

	if filepath.Ext(filename) == "" {
		filename += ".jpg"
	}

	return filename
}
