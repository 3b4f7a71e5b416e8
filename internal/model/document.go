// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Document statuses
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusPublished = "published"
)

// Document types
const (
	DocumentTypeJournal     = "journal"
	DocumentTypePage        = "page"
	DocumentTypePost        = "post"
	DocumentTypeTestimonial = "testimonial"
)

// Journal locations used by the listing filter. LocationAll is the
// "no filter" sentinel and never stored on a document.
const (
	LocationAll      = "all"
	LocationHanoi    = "hanoi"
	LocationSaigon   = "saigon"
	LocationDanang   = "danang"
	LocationPhuQuoc  = "phu-quoc"
	LocationNhaTrang = "nha-trang"
	LocationAbroad   = "abroad"
)

// JournalLocations lists the selectable venue filters, "all" first.
var JournalLocations = []string{
	LocationAll,
	LocationHanoi,
	LocationSaigon,
	LocationDanang,
	LocationPhuQuoc,
	LocationNhaTrang,
	LocationAbroad,
}

// IsValidLocation reports whether loc is a known journal location
// (excluding the "all" sentinel).
func IsValidLocation(loc string) bool {
	for _, l := range JournalLocations {
		if l == loc && l != LocationAll {
			return true
		}
	}
	return false
}

// Document is a top-level content entity: a journal entry, a composed page,
// a blog post or a testimonial. Its body is an ordered list of content
// blocks stored as JSON; block order is authorial intent and is never
// re-sorted.
type Document struct {
	ID              int64           `json:"id"`
	Type            string          `json:"type"`
	Slug            string          `json:"slug"`
	Title           LocalizedText   `json:"title"`
	Excerpt         LocalizedText   `json:"excerpt"`
	FeaturedImage   string          `json:"featured_image"`
	Location        string          `json:"location,omitempty"`
	ListingPriority sql.NullInt64   `json:"-"`
	Blocks          json.RawMessage `json:"blocks"`
	Status          string          `json:"status"`
	PublishedAt     sql.NullTime    `json:"published_at,omitempty"`
	ScheduledAt     sql.NullTime    `json:"scheduled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsPublished returns true if the document is visible to the public site.
func (d *Document) IsPublished() bool {
	return d.Status == DocumentStatusPublished
}

// IsDraft returns true if the document is a draft.
func (d *Document) IsDraft() bool {
	return d.Status == DocumentStatusDraft
}

// HasPriority returns true if an editor assigned a listing priority.
func (d *Document) HasPriority() bool {
	return d.ListingPriority.Valid
}
