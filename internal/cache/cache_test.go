// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
)

func newTestCache() *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      time.Hour,
		MaxSize:         100,
		CleanupInterval: 0, // No background cleanup for tests
	})
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      20 * time.Millisecond,
		CleanupInterval: 0,
	})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(40 * time.Millisecond)

	if _, err := cache.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiration, got %v", err)
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	keys := []string{"doc:journal:a", "doc:journal:b", "doc:page:about"}
	for _, k := range keys {
		if err := cache.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatalf("Set %s failed: %v", k, err)
		}
	}

	if err := cache.DeleteByPrefix(ctx, "doc:journal:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	for _, k := range []string{"doc:journal:a", "doc:journal:b"} {
		if _, err := cache.Get(ctx, k); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("expected %s to be deleted, got %v", k, err)
		}
	}
	if _, err := cache.Get(ctx, "doc:page:about"); err != nil {
		t.Errorf("expected doc:page:about to survive, got %v", err)
	}
}

func TestMemoryCache_ValueIsolation(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	original := []byte("original")
	if err := cache.Set(ctx, "key", original, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	original[0] = 'X'

	val, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "original" {
		t.Errorf("cached value was mutated: %s", string(val))
	}

	val[0] = 'Y'
	again, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(again) != "original" {
		t.Errorf("cached value was mutated through Get result: %s", string(again))
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache := newTestCache()
	_ = cache.Close()
	ctx := context.Background()

	if _, err := cache.Get(ctx, "key"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed from Get, got %v", err)
	}
	if err := cache.Set(ctx, "key", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed from Set, got %v", err)
	}
	// Second Close is a no-op
	if err := cache.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "key", []byte("v"), 0)
	_, _ = cache.Get(ctx, "key")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("expected 1 set, got %d", stats.Sets)
	}
	if stats.HitRate != 50 {
		t.Errorf("expected 50%% hit rate, got %f", stats.HitRate)
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	type page struct {
		Title string `json:"title"`
	}

	typed := NewTypedCache[page](cache, time.Hour)

	calls := 0
	fetch := func() (*page, error) {
		calls++
		return &page{Title: "Our Story"}, nil
	}

	for i := 0; i < 3; i++ {
		val, err := typed.GetOrSet(ctx, "page:about", fetch)
		if err != nil {
			t.Fatalf("GetOrSet failed: %v", err)
		}
		if val.Title != "Our Story" {
			t.Errorf("expected Our Story, got %s", val.Title)
		}
	}

	if calls != 1 {
		t.Errorf("expected fetch to be called once, got %d", calls)
	}
}

func TestTypedCache_FetchError(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	typed := NewTypedCache[string](cache, time.Hour)
	fetchErr := errors.New("boom")

	_, err := typed.GetOrSet(ctx, "key", func() (*string, error) {
		return nil, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error, got %v", err)
	}
}

func TestDocumentCache_Invalidate(t *testing.T) {
	cache := newTestCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	dc := NewDocumentCache(cache, time.Hour)

	docFetches := 0
	fetchDoc := func() (*model.Document, error) {
		docFetches++
		return &model.Document{Slug: "hanoi-wedding", Type: model.DocumentTypeJournal}, nil
	}
	listFetches := 0
	fetchList := func() ([]model.Document, error) {
		listFetches++
		return []model.Document{{Slug: "hanoi-wedding", Type: model.DocumentTypeJournal}}, nil
	}

	for i := 0; i < 2; i++ {
		if _, err := dc.GetDocument(ctx, model.DocumentTypeJournal, "hanoi-wedding", fetchDoc); err != nil {
			t.Fatalf("GetDocument failed: %v", err)
		}
		if _, err := dc.GetList(ctx, model.DocumentTypeJournal, fetchList); err != nil {
			t.Fatalf("GetList failed: %v", err)
		}
	}
	if docFetches != 1 || listFetches != 1 {
		t.Fatalf("expected single fetch per key, got doc=%d list=%d", docFetches, listFetches)
	}

	if err := dc.Invalidate(ctx, model.DocumentTypeJournal, "hanoi-wedding"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	if _, err := dc.GetDocument(ctx, model.DocumentTypeJournal, "hanoi-wedding", fetchDoc); err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if _, err := dc.GetList(ctx, model.DocumentTypeJournal, fetchList); err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if docFetches != 2 || listFetches != 2 {
		t.Errorf("expected re-fetch after invalidation, got doc=%d list=%d", docFetches, listFetches)
	}
}

func TestNew_MemoryFallback(t *testing.T) {
	c := New(Config{
		DefaultTTL: time.Minute,
		MaxSize:    10,
	})
	defer func() { _ = c.Close() }()

	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("expected MemoryCache without redis URL, got %T", c)
	}
}
