package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "wedsite-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestJournal(t *testing.T, q *Queries, slug string, createdAt time.Time, status string) model.Document {
	t.Helper()
	doc, err := q.CreateDocument(context.Background(), CreateDocumentParams{
		Type:        model.DocumentTypeJournal,
		Slug:        slug,
		Title:       model.LocalizedText{EN: "Title " + slug},
		Location:    model.LocationHanoi,
		Blocks:      json.RawMessage(`[{"kind": "spacing", "fields": {"size": "sm"}}]`),
		Status:      status,
		PublishedAt: sql.NullTime{Time: createdAt, Valid: status == model.DocumentStatusPublished},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("CreateDocument(%s): %v", slug, err)
	}
	return doc
}

func TestCreateAndGetDocument(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now().UTC().Truncate(time.Second)
	doc, err := q.CreateDocument(ctx, CreateDocumentParams{
		Type:            model.DocumentTypeJournal,
		Slug:            "first-dance",
		Title:           model.LocalizedText{EN: "First Dance", VI: "Điệu nhảy đầu tiên"},
		Location:        model.LocationSaigon,
		ListingPriority: sql.NullInt64{Int64: 3, Valid: true},
		Blocks:          json.RawMessage(`[{"kind": "spacing", "fields": {"size": "md"}}]`),
		Status:          model.DocumentStatusPublished,
		PublishedAt:     sql.NullTime{Time: now, Valid: true},
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if doc.ID == 0 {
		t.Error("doc.ID should not be 0")
	}
	if doc.Title.VI != "Điệu nhảy đầu tiên" {
		t.Errorf("Title.VI = %q", doc.Title.VI)
	}
	if !doc.HasPriority() || doc.ListingPriority.Int64 != 3 {
		t.Errorf("ListingPriority = %+v", doc.ListingPriority)
	}

	got, err := q.GetDocumentByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocumentByID: %v", err)
	}
	if got.Slug != "first-dance" {
		t.Errorf("Slug = %q", got.Slug)
	}
	if string(got.Blocks) != `[{"kind": "spacing", "fields": {"size": "md"}}]` {
		t.Errorf("Blocks = %s", got.Blocks)
	}
}

func TestCreateDocumentDerivesSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	doc, err := q.CreateDocument(ctx, CreateDocumentParams{
		Type:      model.DocumentTypeJournal,
		Title:     model.LocalizedText{VI: "Đám cưới ở Đà Nẵng"},
		Location:  model.LocationDanang,
		Status:    model.DocumentStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.Slug != "dam-cuoi-o-da-nang" {
		t.Errorf("Slug = %q, want transliterated Vietnamese title", doc.Slug)
	}

	_, err = q.CreateDocument(ctx, CreateDocumentParams{
		Type:      model.DocumentTypeJournal,
		Slug:      "Has Spaces",
		Title:     model.LocalizedText{EN: "Bad Slug"},
		Status:    model.DocumentStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		t.Error("CreateDocument accepted an invalid slug")
	}
}

func TestGetPublishedDocumentBySlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	createTestJournal(t, q, "published-entry", now, model.DocumentStatusPublished)
	createTestJournal(t, q, "draft-entry", now, model.DocumentStatusDraft)

	if _, err := q.GetPublishedDocumentBySlug(ctx, model.DocumentTypeJournal, "published-entry"); err != nil {
		t.Fatalf("published entry should be found: %v", err)
	}

	_, err := q.GetPublishedDocumentBySlug(ctx, model.DocumentTypeJournal, "draft-entry")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("draft entry should be ErrNoRows, got %v", err)
	}
}

func TestListPublishedDocumentsExcludesDrafts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	createTestJournal(t, q, "old", now.Add(-time.Hour), model.DocumentStatusPublished)
	createTestJournal(t, q, "new", now, model.DocumentStatusPublished)
	createTestJournal(t, q, "hidden", now, model.DocumentStatusDraft)

	docs, err := q.ListPublishedDocuments(ctx, model.DocumentTypeJournal)
	if err != nil {
		t.Fatalf("ListPublishedDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].Slug != "new" || docs[1].Slug != "old" {
		t.Errorf("order = %q, %q, want newest first", docs[0].Slug, docs[1].Slug)
	}
}

func TestUpdateDocument(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	doc := createTestJournal(t, q, "to-update", now, model.DocumentStatusDraft)

	updated, err := q.UpdateDocument(ctx, UpdateDocumentParams{
		ID:          doc.ID,
		Slug:        "updated-slug",
		Title:       model.LocalizedText{EN: "Updated"},
		Location:    model.LocationNhaTrang,
		Blocks:      json.RawMessage(`[]`),
		Status:      model.DocumentStatusPublished,
		PublishedAt: sql.NullTime{Time: now, Valid: true},
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if updated.Slug != "updated-slug" || updated.Status != model.DocumentStatusPublished {
		t.Errorf("updated = %q/%q", updated.Slug, updated.Status)
	}
}

func TestPublishScheduledDocument(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	doc, err := q.CreateDocument(ctx, CreateDocumentParams{
		Type:        model.DocumentTypeJournal,
		Slug:        "scheduled",
		Title:       model.LocalizedText{EN: "Scheduled"},
		Blocks:      json.RawMessage(`[]`),
		Status:      model.DocumentStatusDraft,
		ScheduledAt: sql.NullTime{Time: now.Add(-time.Minute), Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	due, err := q.ListDueScheduledDocuments(ctx, now)
	if err != nil {
		t.Fatalf("ListDueScheduledDocuments: %v", err)
	}
	if len(due) != 1 || due[0].ID != doc.ID {
		t.Fatalf("due = %+v, want the scheduled document", due)
	}

	if err := q.PublishDocument(ctx, doc.ID, now); err != nil {
		t.Fatalf("PublishDocument: %v", err)
	}

	got, err := q.GetDocumentByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocumentByID: %v", err)
	}
	if !got.IsPublished() {
		t.Error("document should be published")
	}
	if got.ScheduledAt.Valid {
		t.Error("scheduled_at should be cleared after publish")
	}
}

func TestDeleteDocument(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	doc := createTestJournal(t, q, "doomed", time.Now(), model.DocumentStatusPublished)
	if err := q.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := q.GetDocumentByID(ctx, doc.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want ErrNoRows", err)
	}
}

func TestSitemapEntries(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	createTestJournal(t, q, "visible", now, model.DocumentStatusPublished)
	createTestJournal(t, q, "invisible", now, model.DocumentStatusDraft)

	entries, err := q.ListPublishedSitemapEntries(ctx)
	if err != nil {
		t.Fatalf("ListPublishedSitemapEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Slug != "visible" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestMediaRoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	media, err := q.CreateMedia(ctx, CreateMediaParams{
		UUID:      "a1b2c3",
		Filename:  "ceremony.jpg",
		MimeType:  model.MimeTypeJPEG,
		Size:      123456,
		Width:     sql.NullInt64{Int64: 4000, Valid: true},
		Height:    sql.NullInt64{Int64: 3000, Valid: true},
		Alt:       model.LocalizedText{EN: "The ceremony", VI: "Hôn lễ"},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateMedia: %v", err)
	}

	if err := q.CreateMediaVariant(ctx, CreateMediaVariantParams{
		MediaID:   media.ID,
		Type:      model.VariantThumbnail,
		Width:     400,
		Height:    400,
		Size:      20000,
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateMediaVariant: %v", err)
	}

	got, err := q.GetMediaByUUID(ctx, "a1b2c3")
	if err != nil {
		t.Fatalf("GetMediaByUUID: %v", err)
	}
	if got.Alt.VI != "Hôn lễ" {
		t.Errorf("Alt.VI = %q", got.Alt.VI)
	}

	variants, err := q.ListMediaVariants(ctx, media.ID)
	if err != nil {
		t.Fatalf("ListMediaVariants: %v", err)
	}
	if len(variants) != 1 || variants[0].Type != model.VariantThumbnail {
		t.Fatalf("variants = %+v", variants)
	}
}

func TestEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if _, err := q.CreateEvent(ctx, CreateEventParams{
		Level:     model.EventLevelWarning,
		Category:  model.EventCategoryContent,
		Message:   "journal fetch failed",
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 || events[0].Metadata != "{}" {
		t.Fatalf("events = %+v", events)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db, false); err != nil {
		t.Fatalf("Seed disabled: %v", err)
	}
	docs, err := New(db).ListPublishedDocuments(ctx, model.DocumentTypeJournal)
	if err != nil {
		t.Fatalf("ListPublishedDocuments: %v", err)
	}
	if len(docs) != 0 {
		t.Fatal("disabled seed should not create documents")
	}

	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	docs, err = New(db).ListPublishedDocuments(ctx, model.DocumentTypeJournal)
	if err != nil {
		t.Fatalf("ListPublishedDocuments: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("seed should create published journals")
	}

	// Seeding twice is a no-op.
	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
}
