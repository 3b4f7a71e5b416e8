// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 400, Height: 400, Quality: 80, Crop: true},
	VariantMedium:    {Width: 1080, Height: 810, Quality: 85, Crop: false},
	VariantLarge:     {Width: 2048, Height: 1536, Quality: 90, Crop: false},
}

// Media represents an uploaded file in the media library.
type Media struct {
	ID        int64
	UUID      string
	Filename  string
	MimeType  string
	Size      int64
	Width     sql.NullInt64
	Height    sql.NullInt64
	Alt       LocalizedText
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaVariant represents a generated variant of an image.
type MediaVariant struct {
	ID        int64
	MediaID   int64
	Type      string
	Width     int64
	Height    int64
	Size      int64
	CreatedAt time.Time
}

// IsImage returns true if the media type is an image.
func (m *Media) IsImage() bool {
	return IsSupportedMimeType(m.MimeType)
}

// SupportedImageTypes returns a list of supported image MIME types.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// IsSupportedMimeType checks if a MIME type is supported for upload.
func IsSupportedMimeType(mimeType string) bool {
	for _, t := range SupportedImageTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
