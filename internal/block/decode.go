// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the stored wire shape of a block record.
type envelope struct {
	Kind   Kind            `json:"kind"`
	Fields json.RawMessage `json:"fields"`
}

// Decode parses one stored block record and validates it against the schema
// for its declared kind. Unknown kinds and field sets that do not match the
// variant schema (extra fields included) return a *SchemaError.
func Decode(raw json.RawMessage) (Block, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("malformed record: %v", err)}
	}
	if !IsKnownKind(env.Kind) {
		return nil, &SchemaError{Kind: env.Kind, Reason: "unknown kind"}
	}

	fields := env.Fields
	if len(fields) == 0 {
		fields = json.RawMessage("{}")
	}

	var blk Block
	var err error
	switch env.Kind {
	case KindText:
		blk, err = decodeFields[TextBlock](env.Kind, fields)
	case KindTextImage:
		blk, err = decodeFields[TextImageBlock](env.Kind, fields)
	case KindImageGallery:
		blk, err = decodeFields[ImageGalleryBlock](env.Kind, fields)
	case KindTwoImagesAsymmetry:
		blk, err = decodeFields[TwoImagesAsymmetryBlock](env.Kind, fields)
	case KindSpacing:
		blk, err = decodeFields[SpacingBlock](env.Kind, fields)
	case KindTestimonial:
		blk, err = decodeFields[TestimonialBlock](env.Kind, fields)
	}
	if err != nil {
		return nil, err
	}

	if err := blk.Validate(); err != nil {
		return nil, err
	}
	return blk, nil
}

// DecodeList parses a stored block list strictly: any invalid record fails
// the whole list. This is the write-path validator; the render pipeline
// decodes leniently instead (skipping bad records).
func DecodeList(raw json.RawMessage) ([]Block, error) {
	records, err := SplitList(raw)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(records))
	for i, rec := range records {
		blk, err := Decode(rec)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

// SplitList splits a stored block list into its raw records without
// decoding them. An empty or null input yields an empty list.
func SplitList(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing block list: %w", err)
	}
	return records, nil
}

// decodeFields unmarshals variant fields strictly, rejecting fields that
// are not part of the variant schema.
func decodeFields[T Block](kind Kind, fields json.RawMessage) (Block, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(fields))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, &SchemaError{Kind: kind, Reason: fmt.Sprintf("fields do not match schema: %v", err)}
	}
	return v, nil
}
