// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package viewmodel holds the serializable view-model state owned by the
// page layer: the full-screen image viewer and the listing filter/pagination
// state. State changes only through the transition methods here.
package viewmodel

// Lightbox is the full-screen image viewer state machine over the flat
// image list computed by the render pipeline. Zero value is Closed.
type Lightbox struct {
	IsOpen       bool `json:"is_open"`
	CurrentIndex int  `json:"current_index"`
	Count        int  `json:"count"`
}

// NewLightbox creates a closed viewer over a flat gallery of count images.
func NewLightbox(count int) *Lightbox {
	if count < 0 {
		count = 0
	}
	return &Lightbox{Count: count}
}

// Open opens the viewer at the given flat index. A no-op when the gallery
// is empty; out-of-range indexes clamp into the gallery.
func (l *Lightbox) Open(index int) {
	if l.Count == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= l.Count {
		index = l.Count - 1
	}
	l.IsOpen = true
	l.CurrentIndex = index
}

// Next advances to the following image, wrapping past the end.
func (l *Lightbox) Next() {
	if !l.IsOpen || l.Count == 0 {
		return
	}
	l.CurrentIndex = (l.CurrentIndex + 1) % l.Count
}

// Prev steps back to the previous image, wrapping past the start.
func (l *Lightbox) Prev() {
	if !l.IsOpen || l.Count == 0 {
		return
	}
	l.CurrentIndex = (l.CurrentIndex - 1 + l.Count) % l.Count
}

// Close closes the viewer.
func (l *Lightbox) Close() {
	l.IsOpen = false
	l.CurrentIndex = 0
}
