// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
)

// DocumentCache caches published documents and document listings in front
// of the store. Keys follow two shapes:
//
//	doc:{type}:{slug}   single document by slug
//	list:{type}         full published listing for a type
//
// Write operations on a document must call Invalidate for its type so both
// shapes are dropped together.
type DocumentCache struct {
	docs  *TypedCache[model.Document]
	lists *TypedCache[[]model.Document]
	cache Cacher
}

// NewDocumentCache creates a DocumentCache backed by the given Cacher.
func NewDocumentCache(c Cacher, ttl time.Duration) *DocumentCache {
	return &DocumentCache{
		docs:  NewTypedCache[model.Document](c, ttl),
		lists: NewTypedCache[[]model.Document](c, ttl),
		cache: c,
	}
}

func docKey(docType, slug string) string {
	return fmt.Sprintf("doc:%s:%s", docType, slug)
}

func listKey(docType string) string {
	return fmt.Sprintf("list:%s", docType)
}

// GetDocument returns the cached document for (type, slug), or calls fetch
// and caches the result on a miss.
func (c *DocumentCache) GetDocument(ctx context.Context, docType, slug string, fetch func() (*model.Document, error)) (*model.Document, error) {
	return c.docs.GetOrSet(ctx, docKey(docType, slug), fetch)
}

// GetList returns the cached published listing for a type, or calls fetch
// and caches the result on a miss.
func (c *DocumentCache) GetList(ctx context.Context, docType string, fetch func() ([]model.Document, error)) ([]model.Document, error) {
	result, err := c.lists.GetOrSet(ctx, listKey(docType), func() (*[]model.Document, error) {
		docs, err := fetch()
		if err != nil {
			return nil, err
		}
		return &docs, nil
	})
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// Invalidate drops the cached document and the listing for its type.
// Called after any write that changes a document's content or visibility.
func (c *DocumentCache) Invalidate(ctx context.Context, docType, slug string) error {
	if err := c.docs.Delete(ctx, docKey(docType, slug)); err != nil {
		return err
	}
	return c.cache.Delete(ctx, listKey(docType))
}

// InvalidateType drops every cached entry for a document type.
func (c *DocumentCache) InvalidateType(ctx context.Context, docType string) error {
	if err := c.cache.DeleteByPrefix(ctx, fmt.Sprintf("doc:%s:", docType)); err != nil {
		return err
	}
	return c.cache.Delete(ctx, listKey(docType))
}
