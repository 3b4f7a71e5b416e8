// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/wedsite-go/internal/cache"
	"github.com/olegiv/wedsite-go/internal/model"
	"github.com/olegiv/wedsite-go/internal/service"
	"github.com/olegiv/wedsite-go/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "wedsite-scheduler-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	_ = tmpFile.Close()

	db, err := store.NewDB(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(tmpFile.Name())
	})
	return db
}

func TestNew(t *testing.T) {
	s := New(nil, nil, slog.Default())
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := New(nil, nil, slog.Default())

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(s.cron.Entries()) != 2 {
		t.Errorf("expected 2 registered jobs, got %d", len(s.cron.Entries()))
	}

	s.Stop()
}

func TestPublishDueJob(t *testing.T) {
	db := testDB(t)
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	content := service.NewContentService(db, c, time.Minute)
	q := store.New(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc, err := q.CreateDocument(ctx, store.CreateDocumentParams{
		Type:        model.DocumentTypeJournal,
		Slug:        "due-wedding",
		Title:       model.LocalizedText{EN: "Due Wedding"},
		Location:    model.LocationHanoi,
		Status:      model.DocumentStatusDraft,
		ScheduledAt: sql.NullTime{Time: now.Add(-time.Minute), Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}

	s := New(content, db, slog.Default())
	s.publishDue()

	published, err := q.GetPublishedDocumentBySlug(ctx, model.DocumentTypeJournal, "due-wedding")
	if err != nil {
		t.Fatalf("expected document to be published: %v", err)
	}
	if published.ID != doc.ID {
		t.Errorf("published wrong document: %d != %d", published.ID, doc.ID)
	}
	if published.ScheduledAt.Valid {
		t.Error("expected schedule to be cleared after publishing")
	}
}

func TestPruneEventsJob(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	old := time.Now().UTC().Add(-EventRetention - time.Hour)
	recent := time.Now().UTC().Add(-time.Hour)
	for _, created := range []time.Time{old, recent} {
		_, err := q.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   "retention test",
			CreatedAt: created,
		})
		if err != nil {
			t.Fatalf("failed to seed event: %v", err)
		}
	}

	s := New(nil, db, slog.Default())
	s.pruneEvents()

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 surviving event, got %d", len(events))
	}
	if !events[0].CreatedAt.After(old) {
		t.Error("wrong event survived pruning")
	}
}
