// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package block defines the closed set of content block kinds that editors
// compose documents from, and validates stored block records against their
// schemas. A block record carries an explicit kind discriminator; the field
// set must match the variant schema exactly.
package block

import (
	"fmt"

	"github.com/olegiv/wedsite-go/internal/model"
)

// Kind identifies a content block variant.
type Kind string

// The closed set of block kinds. Adding a variant means adding a constant
// here, a field struct below, and a case in decode and in the render
// pipeline dispatch.
const (
	KindText               Kind = "text"
	KindTextImage          Kind = "text_image"
	KindImageGallery       Kind = "image_gallery"
	KindTwoImagesAsymmetry Kind = "two_images_asymmetry"
	KindSpacing            Kind = "spacing"
	KindTestimonial        Kind = "testimonial"
)

// Kinds lists every registered block kind.
var Kinds = []Kind{
	KindText,
	KindTextImage,
	KindImageGallery,
	KindTwoImagesAsymmetry,
	KindSpacing,
	KindTestimonial,
}

// IsKnownKind reports whether k is a registered block kind.
func IsKnownKind(k Kind) bool {
	for _, known := range Kinds {
		if known == k {
			return true
		}
	}
	return false
}

// Text alignment values for TextBlock.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Layout values for TextImageBlock.
const (
	LayoutTextLeft  = "text-left"
	LayoutTextRight = "text-right"
)

// Offset values for TwoImagesAsymmetryBlock.
const (
	OffsetUp   = "up"
	OffsetDown = "down"
)

// Spacing sizes and their vertical height tokens (pixels).
const (
	SpacingSM = "sm"
	SpacingMD = "md"
	SpacingLG = "lg"
	SpacingXL = "xl"
)

// SpacingHeights maps a spacing size to its fixed vertical height token.
var SpacingHeights = map[string]int{
	SpacingSM: 24,
	SpacingMD: 48,
	SpacingLG: 96,
	SpacingXL: 160,
}

// SchemaError describes a stored block record that does not conform to the
// schema declared by its kind.
type SchemaError struct {
	Kind   Kind
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("block schema: kind %q field %q: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("block schema: kind %q: %s", e.Kind, e.Reason)
}

// Block is one unit of authored content with a declared kind.
// Implementations are the variant field structs below.
type Block interface {
	Kind() Kind
	Validate() error
}

// TextBlock is a text-only section with optional title and rich description.
type TextBlock struct {
	Title       model.LocalizedText `json:"title"`
	Description model.LocalizedText `json:"description"`
	Alignment   string              `json:"alignment"`
	Columns     int                 `json:"columns"`
}

// Kind implements Block.
func (b TextBlock) Kind() Kind { return KindText }

// Validate implements Block.
func (b TextBlock) Validate() error {
	switch b.Alignment {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return &SchemaError{Kind: KindText, Field: "alignment", Reason: fmt.Sprintf("unknown value %q", b.Alignment)}
	}
	if b.Columns < 1 || b.Columns > 3 {
		return &SchemaError{Kind: KindText, Field: "columns", Reason: fmt.Sprintf("must be 1-3, got %d", b.Columns)}
	}
	return nil
}

// TextImageBlock pairs a rich text section with a single image.
type TextImageBlock struct {
	Layout      string              `json:"layout"`
	Title       model.LocalizedText `json:"title"`
	Description model.LocalizedText `json:"description"`
	Image       string              `json:"image"`
}

// Kind implements Block.
func (b TextImageBlock) Kind() Kind { return KindTextImage }

// Validate implements Block.
func (b TextImageBlock) Validate() error {
	switch b.Layout {
	case LayoutTextLeft, LayoutTextRight:
	default:
		return &SchemaError{Kind: KindTextImage, Field: "layout", Reason: fmt.Sprintf("unknown value %q", b.Layout)}
	}
	if b.Title.IsEmpty() {
		return &SchemaError{Kind: KindTextImage, Field: "title", Reason: "required"}
	}
	if b.Image == "" {
		return &SchemaError{Kind: KindTextImage, Field: "image", Reason: "required"}
	}
	return nil
}

// GalleryImage is one image within a gallery-style block. List order is
// significant: it drives lightbox navigation order.
type GalleryImage struct {
	Src string              `json:"src"`
	Alt model.LocalizedText `json:"alt"`
}

// ImageGalleryBlock is an ordered set of images shown in a column grid.
type ImageGalleryBlock struct {
	Images  []GalleryImage      `json:"images"`
	Columns int                 `json:"columns"`
	Caption model.LocalizedText `json:"caption"`
}

// Kind implements Block.
func (b ImageGalleryBlock) Kind() Kind { return KindImageGallery }

// Validate implements Block.
func (b ImageGalleryBlock) Validate() error {
	if len(b.Images) == 0 {
		return &SchemaError{Kind: KindImageGallery, Field: "images", Reason: "required"}
	}
	for i, img := range b.Images {
		if img.Src == "" {
			return &SchemaError{Kind: KindImageGallery, Field: fmt.Sprintf("images[%d].src", i), Reason: "required"}
		}
	}
	if b.Columns < 1 || b.Columns > 4 {
		return &SchemaError{Kind: KindImageGallery, Field: "columns", Reason: fmt.Sprintf("must be 1-4, got %d", b.Columns)}
	}
	return nil
}

// TwoImagesAsymmetryBlock shows two images side by side with one offset
// vertically against the other.
type TwoImagesAsymmetryBlock struct {
	ImageLeft  string              `json:"image_left"`
	ImageRight string              `json:"image_right"`
	Offset     string              `json:"offset"`
	Caption    model.LocalizedText `json:"caption"`
}

// Kind implements Block.
func (b TwoImagesAsymmetryBlock) Kind() Kind { return KindTwoImagesAsymmetry }

// Validate implements Block.
func (b TwoImagesAsymmetryBlock) Validate() error {
	if b.ImageLeft == "" {
		return &SchemaError{Kind: KindTwoImagesAsymmetry, Field: "image_left", Reason: "required"}
	}
	if b.ImageRight == "" {
		return &SchemaError{Kind: KindTwoImagesAsymmetry, Field: "image_right", Reason: "required"}
	}
	switch b.Offset {
	case OffsetUp, OffsetDown:
	default:
		return &SchemaError{Kind: KindTwoImagesAsymmetry, Field: "offset", Reason: fmt.Sprintf("unknown value %q", b.Offset)}
	}
	return nil
}

// SpacingBlock inserts fixed vertical whitespace between sections.
type SpacingBlock struct {
	Size string `json:"size"`
}

// Kind implements Block.
func (b SpacingBlock) Kind() Kind { return KindSpacing }

// Validate implements Block.
func (b SpacingBlock) Validate() error {
	if _, ok := SpacingHeights[b.Size]; !ok {
		return &SchemaError{Kind: KindSpacing, Field: "size", Reason: fmt.Sprintf("unknown value %q", b.Size)}
	}
	return nil
}

// Height returns the vertical height token for the spacing size.
func (b SpacingBlock) Height() int {
	return SpacingHeights[b.Size]
}

// TestimonialBlock quotes a client, with a decorative display text.
type TestimonialBlock struct {
	DecorativeText model.LocalizedText `json:"decorative_text"`
	Quote          model.LocalizedText `json:"quote"`
	Author         string              `json:"author"`
}

// Kind implements Block.
func (b TestimonialBlock) Kind() Kind { return KindTestimonial }

// Validate implements Block.
func (b TestimonialBlock) Validate() error {
	if b.Quote.IsEmpty() {
		return &SchemaError{Kind: KindTestimonial, Field: "quote", Reason: "required"}
	}
	return nil
}
