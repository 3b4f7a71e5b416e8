package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/wedsite-go/internal/model"
)

// Seed installs the demo bilingual content set when enabled.
// It is a no-op when documents already exist.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return fmt.Errorf("checking for existing documents: %w", err)
	}
	if count > 0 {
		slog.Info("documents already exist, skipping seed")
		return nil
	}

	// All-or-nothing: a partial demo set is worse than none
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)
	docs := demoDocuments(time.Now())
	for i, doc := range docs {
		if _, err := queries.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("seeding document %d (%s): %w", i, doc.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded demo content", "documents", len(docs))
	return nil
}

// demoDocuments builds the demo content set: journal entries with and
// without listing priority, a composed page, a blog post and testimonials.
func demoDocuments(now time.Time) []CreateDocumentParams {
	published := sql.NullTime{Time: now, Valid: true}

	journalBlocks := json.RawMessage(`[
		{"kind": "text", "fields": {
			"title": {"en": "A Lantern-Lit Evening", "vi": "Một buổi tối rực rỡ ánh đèn lồng"},
			"description": {"en": "An intimate ceremony by the river.", "vi": "Một hôn lễ ấm cúng bên bờ sông."},
			"alignment": "center", "columns": 1}},
		{"kind": "image_gallery", "fields": {
			"images": [
				{"src": "/journals/lantern/01.jpg", "alt": {"en": "First dance", "vi": "Điệu nhảy đầu tiên"}},
				{"src": "/journals/lantern/02.jpg", "alt": {"en": "The vows", "vi": "Lời thề"}},
				{"src": "/journals/lantern/03.jpg", "alt": {"en": "Lanterns on the water", "vi": "Đèn lồng trên mặt nước"}}
			],
			"columns": 3, "caption": {"en": "Moments from the evening", "vi": "Khoảnh khắc trong đêm"}}},
		{"kind": "spacing", "fields": {"size": "lg"}},
		{"kind": "two_images_asymmetry", "fields": {
			"image_left": "/journals/lantern/detail-left.jpg",
			"image_right": "/journals/lantern/detail-right.jpg",
			"offset": "up", "caption": {"en": "Details", "vi": "Chi tiết"}}},
		{"kind": "testimonial", "fields": {
			"decorative_text": {"en": "gratitude", "vi": "tri ân"},
			"quote": {"en": "Everything felt effortless.", "vi": "Mọi thứ thật nhẹ nhàng."},
			"author": "Mai & Duc"}}
	]`)

	pageBlocks := json.RawMessage(`[
		{"kind": "text_image", "fields": {
			"layout": "text-left",
			"title": {"en": "About the Studio", "vi": "Về chúng tôi"},
			"description": {"en": "We plan weddings across Vietnam and abroad.", "vi": "Chúng tôi tổ chức hôn lễ khắp Việt Nam và nước ngoài."},
			"image": "/pages/about/studio.jpg"}},
		{"kind": "spacing", "fields": {"size": "md"}}
	]`)

	return []CreateDocumentParams{
		{
			Type:            model.DocumentTypeJournal,
			Slug:            "lantern-lit-evening-hoi-an",
			Title:           model.LocalizedText{EN: "A Lantern-Lit Evening", VI: "Một buổi tối rực rỡ ánh đèn lồng"},
			Excerpt:         model.LocalizedText{EN: "An intimate riverside ceremony.", VI: "Hôn lễ ấm cúng bên sông."},
			FeaturedImage:   "/journals/lantern/cover.jpg",
			Location:        model.LocationDanang,
			ListingPriority: sql.NullInt64{Int64: 1, Valid: true},
			Blocks:          journalBlocks,
			Status:          model.DocumentStatusPublished,
			PublishedAt:     published,
			CreatedAt:       now.Add(-72 * time.Hour),
			UpdatedAt:       now,
		},
		{
			Type:          model.DocumentTypeJournal,
			Slug:          "garden-ceremony-hanoi",
			Title:         model.LocalizedText{EN: "A Garden Ceremony", VI: "Hôn lễ trong vườn"},
			Excerpt:       model.LocalizedText{EN: "Spring blooms in the old quarter.", VI: "Sắc xuân phố cổ."},
			FeaturedImage: "/journals/garden/cover.jpg",
			Location:      model.LocationHanoi,
			Blocks:        journalBlocks,
			Status:        model.DocumentStatusPublished,
			PublishedAt:   published,
			CreatedAt:     now.Add(-48 * time.Hour),
			UpdatedAt:     now,
		},
		{
			Type:          model.DocumentTypeJournal,
			Slug:          "island-vows-phu-quoc",
			Title:         model.LocalizedText{EN: "Island Vows", VI: "Lời thề nơi đảo xa"},
			Excerpt:       model.LocalizedText{EN: "Barefoot on the sand.", VI: "Chân trần trên cát."},
			FeaturedImage: "/journals/island/cover.jpg",
			Location:      model.LocationPhuQuoc,
			Blocks:        journalBlocks,
			Status:        model.DocumentStatusPublished,
			PublishedAt:   published,
			CreatedAt:     now.Add(-24 * time.Hour),
			UpdatedAt:     now,
		},
		{
			Type:        model.DocumentTypePage,
			Slug:        "about",
			Title:       model.LocalizedText{EN: "About", VI: "Về chúng tôi"},
			Blocks:      pageBlocks,
			Status:      model.DocumentStatusPublished,
			PublishedAt: published,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Type:        model.DocumentTypePost,
			Slug:        "choosing-a-venue",
			Title:       model.LocalizedText{EN: "Choosing a Venue", VI: "Chọn địa điểm cưới"},
			Excerpt:     model.LocalizedText{EN: "What to look for.", VI: "Những điều cần lưu ý."},
			Blocks:      pageBlocks,
			Status:      model.DocumentStatusPublished,
			PublishedAt: published,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Type:        model.DocumentTypeTestimonial,
			Slug:        "mai-and-duc",
			Title:       model.LocalizedText{EN: "Mai & Duc", VI: "Mai & Đức"},
			Excerpt:     model.LocalizedText{EN: "Everything felt effortless.", VI: "Mọi thứ thật nhẹ nhàng."},
			Blocks:      json.RawMessage("[]"),
			Status:      model.DocumentStatusPublished,
			PublishedAt: published,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Type:      model.DocumentTypeJournal,
			Slug:      "draft-mountain-elopement",
			Title:     model.LocalizedText{EN: "Mountain Elopement", VI: "Đám cưới trên núi"},
			Location:  model.LocationAbroad,
			Blocks:    journalBlocks,
			Status:    model.DocumentStatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
