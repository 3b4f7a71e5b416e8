// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the recurring background jobs: publishing documents
// whose scheduled time has passed, and pruning old event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/wedsite-go/internal/service"
	"github.com/olegiv/wedsite-go/internal/store"
)

// EventRetention is how long event log entries are kept.
const EventRetention = 90 * 24 * time.Hour

// Scheduler handles scheduled tasks like publishing documents.
type Scheduler struct {
	content   *service.ContentService
	queries   *store.Queries
	cron      *cron.Cron
	logger    *slog.Logger
	onPublish func(ctx context.Context)
}

// OnPublish registers a hook that runs after scheduled documents were
// published, before the next cron tick. Used to drop derived caches like
// the sitemap.
func (s *Scheduler) OnPublish(fn func(ctx context.Context)) {
	s.onPublish = fn
}

// New creates a new scheduler instance.
func New(content *service.ContentService, db *sql.DB, logger *slog.Logger) *Scheduler {
	var queries *store.Queries
	if db != nil {
		queries = store.New(db)
	}
	return &Scheduler{
		content: content,
		queries: queries,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the jobs and begins the cron loop. Scheduled documents
// are checked every minute; the event log is pruned once a day.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.publishDue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("30 3 * * *", s.pruneEvents); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "category", "scheduler")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped", "category", "scheduler")
}

// publishDue publishes every document whose scheduled time has passed.
func (s *Scheduler) publishDue() {
	if s.content == nil {
		return
	}

	ctx := context.Background()
	count, err := s.content.PublishDue(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("scheduled publishing failed", "error", err, "category", "scheduler")
		return
	}
	if count > 0 {
		s.logger.Info("scheduled documents published", "count", count, "category", "scheduler")
		if s.onPublish != nil {
			s.onPublish(ctx)
		}
	}
}

// pruneEvents deletes event log entries past the retention window.
func (s *Scheduler) pruneEvents() {
	if s.queries == nil {
		return
	}

	cutoff := time.Now().UTC().Add(-EventRetention)
	deleted, err := s.queries.DeleteEventsBefore(context.Background(), cutoff)
	if err != nil {
		s.logger.Error("event log pruning failed", "error", err, "category", "scheduler")
		return
	}
	if deleted > 0 {
		s.logger.Info("event log pruned", "deleted", deleted, "cutoff", cutoff, "category", "scheduler")
	}
}
