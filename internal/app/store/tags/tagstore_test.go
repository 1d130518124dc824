package tagstore

import (
	"testing"

	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/testutil"
)

func TestStore_UpsertAndGetAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Upsert(ctx, models.PageTag{Label: "guides", Color: "#0af"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.Upsert(ctx, models.PageTag{Label: "api", Color: "#f00"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Upserting the same label updates in place instead of duplicating.
	if err := store.Upsert(ctx, models.PageTag{Label: "guides", Color: "#00f", Description: "how-to pages"}); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}

	tags, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("len(tags) = %d, want 2", len(tags))
	}
	// Sorted by label: api, guides.
	if tags[0].Label != "api" || tags[1].Label != "guides" {
		t.Errorf("order = [%s %s], want [api guides]", tags[0].Label, tags[1].Label)
	}
	if tags[1].Color != "#00f" || tags[1].Description != "how-to pages" {
		t.Errorf("update did not persist: %+v", tags[1])
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Upsert(ctx, models.PageTag{Label: "guides"})

	deleted, err := store.Delete(ctx, "guides")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if deleted, _ := store.Delete(ctx, "missing"); deleted != 0 {
		t.Errorf("deleting a missing tag: deleted = %d, want 0", deleted)
	}
}

func TestStore_ReplaceAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Upsert(ctx, models.PageTag{Label: "old"})

	incoming := []models.PageTag{
		{Label: "alpha", Color: "#111"},
		{Label: "beta", Color: "#222"},
	}
	if err := store.ReplaceAll(ctx, incoming); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	tags, _ := store.GetAll(ctx)
	if len(tags) != 2 {
		t.Fatalf("len(tags) = %d, want 2", len(tags))
	}
	if tags[0].Label != "alpha" {
		t.Errorf("tags[0] = %q", tags[0].Label)
	}
}
