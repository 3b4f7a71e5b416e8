// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render transforms a document's ordered block list plus an active
// locale into render-ready records for the public API. It resolves all
// localized text and image references and computes the flat global image
// index used for cross-block lightbox navigation.
package render

import (
	"encoding/json"

	"github.com/olegiv/wedsite-go/internal/block"
	"github.com/olegiv/wedsite-go/internal/imgurl"
	"github.com/olegiv/wedsite-go/internal/model"
)

// Thumbnail dimensions requested from the resizing proxy for gallery grids.
const (
	thumbWidth  = 400
	thumbHeight = 400
)

// Record is one render-ready unit. Exactly one variant pointer is set,
// matching Kind; records appear in stored block order.
type Record struct {
	Kind        block.Kind         `json:"kind"`
	Text        *TextRecord        `json:"text,omitempty"`
	TextImage   *TextImageRecord   `json:"text_image,omitempty"`
	Gallery     *GalleryRecord     `json:"gallery,omitempty"`
	Asymmetry   *AsymmetryRecord   `json:"asymmetry,omitempty"`
	Spacing     *SpacingRecord     `json:"spacing,omitempty"`
	Testimonial *TestimonialRecord `json:"testimonial,omitempty"`
}

// TextRecord is the resolved form of a TextBlock.
type TextRecord struct {
	Title           string `json:"title,omitempty"`
	DescriptionHTML string `json:"description_html,omitempty"`
	Alignment       string `json:"alignment"`
	Columns         int    `json:"columns"`
}

// TextImageRecord is the resolved form of a TextImageBlock.
type TextImageRecord struct {
	Layout          string `json:"layout"`
	Title           string `json:"title"`
	DescriptionHTML string `json:"description_html,omitempty"`
	ImageURL        string `json:"image_url"`
	ImageIndex      int    `json:"image_index"`
}

// GalleryImageRecord is one resolved image in a gallery grid.
type GalleryImageRecord struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url"`
	Alt      string `json:"alt,omitempty"`
	Index    int    `json:"index"`
}

// GalleryRecord is the resolved form of an ImageGalleryBlock.
type GalleryRecord struct {
	Images  []GalleryImageRecord `json:"images"`
	Columns int                  `json:"columns"`
	Caption string               `json:"caption,omitempty"`
}

// AsymmetryRecord is the resolved form of a TwoImagesAsymmetryBlock.
type AsymmetryRecord struct {
	LeftURL    string `json:"left_url"`
	RightURL   string `json:"right_url"`
	LeftIndex  int    `json:"left_index"`
	RightIndex int    `json:"right_index"`
	Offset     string `json:"offset"`
	Caption    string `json:"caption,omitempty"`
}

// SpacingRecord is the resolved form of a SpacingBlock.
type SpacingRecord struct {
	Height int `json:"height"`
}

// TestimonialRecord is the resolved form of a TestimonialBlock.
type TestimonialRecord struct {
	DecorativeText string `json:"decorative_text,omitempty"`
	QuoteHTML      string `json:"quote_html"`
	Author         string `json:"author,omitempty"`
}

// SlotKey addresses one image slot within the block list: the record's
// position in the output and the image's slot order within that block.
type SlotKey struct {
	Block int `json:"block"`
	Slot  int `json:"slot"`
}

// Result is the output of resolving a block list for one locale.
// FlatImages is the single global ordering of every image across all
// blocks; ImageIndex maps each (block, slot) to its position in FlatImages.
type Result struct {
	Records    []Record        `json:"records"`
	FlatImages []string        `json:"flat_images"`
	ImageIndex map[SlotKey]int `json:"-"`
	Skipped    int             `json:"-"`
}

// Pipeline resolves block lists into render results. It holds the image
// resolver; resolution itself is deterministic with no I/O.
type Pipeline struct {
	images *imgurl.Resolver
}

// New creates a render pipeline using the given image resolver.
func New(images *imgurl.Resolver) *Pipeline {
	return &Pipeline{images: images}
}

// Resolve decodes a stored block list and resolves it for the locale.
// Invalid records are skipped, never failing the whole document: a single
// bad block must not break the page. A malformed list resolves to an empty
// result.
func (p *Pipeline) Resolve(blocksJSON json.RawMessage, locale model.Locale) Result {
	records, err := block.SplitList(blocksJSON)
	if err != nil {
		return Result{ImageIndex: map[SlotKey]int{}, Skipped: 1}
	}

	blocks := make([]block.Block, 0, len(records))
	skipped := 0
	for _, rec := range records {
		blk, err := block.Decode(rec)
		if err != nil {
			skipped++
			continue
		}
		blocks = append(blocks, blk)
	}

	result := p.ResolveBlocks(blocks, locale)
	result.Skipped += skipped
	return result
}

// ResolveBlocks resolves an already-decoded block list for the locale.
// Output record order is exactly the input block order.
func (p *Pipeline) ResolveBlocks(blocks []block.Block, locale model.Locale) Result {
	result := Result{
		Records:    make([]Record, 0, len(blocks)),
		FlatImages: []string{},
		ImageIndex: make(map[SlotKey]int),
	}

	for _, blk := range blocks {
		blockIdx := len(result.Records)

		// addImage appends to the flat gallery and records the slot mapping.
		slot := 0
		addImage := func(url string) int {
			global := len(result.FlatImages)
			result.FlatImages = append(result.FlatImages, url)
			result.ImageIndex[SlotKey{Block: blockIdx, Slot: slot}] = global
			slot++
			return global
		}

		switch b := blk.(type) {
		case block.TextBlock:
			result.Records = append(result.Records, Record{
				Kind: block.KindText,
				Text: &TextRecord{
					Title:           b.Title.Resolve(locale),
					DescriptionHTML: localizedRichText(b.Description, locale),
					Alignment:       b.Alignment,
					Columns:         b.Columns,
				},
			})

		case block.TextImageBlock:
			url := p.images.Resolve(b.Image)
			result.Records = append(result.Records, Record{
				Kind: block.KindTextImage,
				TextImage: &TextImageRecord{
					Layout:          b.Layout,
					Title:           b.Title.Resolve(locale),
					DescriptionHTML: localizedRichText(b.Description, locale),
					ImageURL:        url,
					ImageIndex:      addImage(url),
				},
			})

		case block.ImageGalleryBlock:
			images := make([]GalleryImageRecord, 0, len(b.Images))
			for _, img := range b.Images {
				url := p.images.Resolve(img.Src)
				images = append(images, GalleryImageRecord{
					URL:      url,
					ThumbURL: p.images.ResolveSized(img.Src, thumbWidth, thumbHeight),
					Alt:      img.Alt.Resolve(locale),
					Index:    addImage(url),
				})
			}
			result.Records = append(result.Records, Record{
				Kind: block.KindImageGallery,
				Gallery: &GalleryRecord{
					Images:  images,
					Columns: b.Columns,
					Caption: b.Caption.Resolve(locale),
				},
			})

		case block.TwoImagesAsymmetryBlock:
			leftURL := p.images.Resolve(b.ImageLeft)
			rightURL := p.images.Resolve(b.ImageRight)
			result.Records = append(result.Records, Record{
				Kind: block.KindTwoImagesAsymmetry,
				Asymmetry: &AsymmetryRecord{
					LeftURL:    leftURL,
					RightURL:   rightURL,
					LeftIndex:  addImage(leftURL),
					RightIndex: addImage(rightURL),
					Offset:     b.Offset,
					Caption:    b.Caption.Resolve(locale),
				},
			})

		case block.SpacingBlock:
			result.Records = append(result.Records, Record{
				Kind:    block.KindSpacing,
				Spacing: &SpacingRecord{Height: b.Height()},
			})

		case block.TestimonialBlock:
			result.Records = append(result.Records, Record{
				Kind: block.KindTestimonial,
				Testimonial: &TestimonialRecord{
					DecorativeText: b.DecorativeText.Resolve(locale),
					QuoteHTML:      localizedRichText(b.Quote, locale),
					Author:         b.Author,
				},
			})

		default:
			// Unregistered implementation of Block; render nothing.
			result.Skipped++
		}
	}

	return result
}
