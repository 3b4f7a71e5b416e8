// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import "github.com/olegiv/wedsite-go/internal/model"

// JournalPageSize is the fixed listing page size.
const JournalPageSize = 12

// Listing is the journal listing view-model: the active location filter and
// the current page. Changing the filter always resets the page to 1.
type Listing struct {
	Location    string `json:"location"`
	CurrentPage int    `json:"current_page"`
}

// NewListing creates a listing view-model showing all locations, page 1.
func NewListing() *Listing {
	return &Listing{Location: model.LocationAll, CurrentPage: 1}
}

// SetFilter switches the active location filter. Unknown locations fall
// back to the "all" sentinel. Pagination resets to page 1 even when the
// filter did not change.
func (l *Listing) SetFilter(location string) {
	if location != model.LocationAll && !model.IsValidLocation(location) {
		location = model.LocationAll
	}
	l.Location = location
	l.CurrentPage = 1
}

// SetPage moves to the given page, clamping below 1.
// Callers clamp the upper bound against the filtered total via TotalPages.
func (l *Listing) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	l.CurrentPage = page
}

// TotalPages returns the number of pages for a filtered item count.
// At least 1 so an empty listing still renders a first page.
func TotalPages(totalItems int) int {
	pages := (totalItems + JournalPageSize - 1) / JournalPageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageBounds returns the half-open [start, end) slice bounds for the given
// page over a filtered list of totalItems entries.
func PageBounds(page, totalItems int) (start, end int) {
	if page < 1 {
		page = 1
	}
	start = (page - 1) * JournalPageSize
	if start > totalItems {
		start = totalItems
	}
	end = start + JournalPageSize
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
