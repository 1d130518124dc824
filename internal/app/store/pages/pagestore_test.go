package pagestore

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/testutil"
)

func TestNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	if store == nil {
		t.Fatal("New() returned nil")
	}
}

func TestStore_InsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc := content.NewDocument()
	doc.Blocks = []content.Block{
		{Type: content.TypeParagraph, Data: json.RawMessage(`{"text":"hello"}`)},
	}
	page := models.Page{
		Title:      "Getting Started",
		Slug:       "getting-started",
		Status:     models.StatusPublished,
		Visibility: models.VisibilityPublic,
		Content:    &doc,
	}

	created, err := store.Insert(ctx, page)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Insert() should generate an id")
	}
	if created.LastUpdated.IsZero() {
		t.Error("LastUpdated should be stamped")
	}

	retrieved, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if retrieved.Title != page.Title || retrieved.Slug != page.Slug {
		t.Errorf("retrieved = (%q, %q), want (%q, %q)",
			retrieved.Title, retrieved.Slug, page.Title, page.Slug)
	}
	if retrieved.Content == nil || len(retrieved.Content.Blocks) != 1 {
		t.Fatal("content document should round-trip through the store")
	}
	if retrieved.Content.Blocks[0].Type != content.TypeParagraph {
		t.Errorf("block type = %q, want paragraph", retrieved.Content.Blocks[0].Type)
	}
}

func TestStore_Insert_KeepsProvidedID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Insert(ctx, models.Page{ID: "imported-id", Title: "T", Slug: "t"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if created.ID != "imported-id" {
		t.Errorf("ID = %q, want imported-id", created.ID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestStore_Replace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Insert(ctx, models.Page{Title: "Old", Slug: "page"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	created.Title = "New"
	created.Summary = "now with a summary"
	if err := store.Replace(ctx, created); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "New" || got.Summary != "now with a summary" {
		t.Errorf("replace did not persist: %+v", got)
	}

	if err := store.Replace(ctx, models.Page{ID: "missing", Slug: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("replacing a missing page: error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root, _ := store.Insert(ctx, models.Page{Title: "Root", Slug: "root"})
	child, _ := store.Insert(ctx, models.Page{Title: "Child", Slug: "child", ParentID: root.ID})
	grand, _ := store.Insert(ctx, models.Page{Title: "Grand", Slug: "grand", ParentID: child.ID})
	other, _ := store.Insert(ctx, models.Page{Title: "Other", Slug: "other"})

	deleted, err := store.Delete(ctx, root.ID, []string{child.ID, grand.ID})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	if _, err := store.GetByID(ctx, child.ID); !errors.Is(err, ErrNotFound) {
		t.Error("descendant should be deleted")
	}
	if _, err := store.GetByID(ctx, other.ID); err != nil {
		t.Errorf("unrelated page should survive, got %v", err)
	}
}

func TestStore_SlugExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	parent, _ := store.Insert(ctx, models.Page{Title: "P", Slug: "parent"})
	child, _ := store.Insert(ctx, models.Page{Title: "C", Slug: "intro", ParentID: parent.ID})

	exists, err := store.SlugExists(ctx, parent.ID, "intro", "")
	if err != nil {
		t.Fatalf("SlugExists() error = %v", err)
	}
	if !exists {
		t.Error("sibling slug should be reported taken")
	}

	// Same slug under a different parent is free.
	if exists, _ := store.SlugExists(ctx, "", "intro", ""); exists {
		t.Error("slug under a different parent should be free")
	}

	// Excluding the page itself frees its own slug for replace.
	if exists, _ := store.SlugExists(ctx, parent.ID, "intro", child.ID); exists {
		t.Error("page's own slug should not block its replace")
	}
}

func TestStore_ReplaceAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Insert(ctx, models.Page{Title: "Old", Slug: "old"})

	incoming := []models.Page{
		{ID: "snap-1", Title: "A", Slug: "a"},
		{ID: "snap-2", Title: "B", Slug: "b", ParentID: "snap-1"},
	}
	if err := store.ReplaceAll(ctx, incoming); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	if _, err := store.GetByID(ctx, "snap-1"); err != nil {
		t.Error("snapshot ids should be preserved across restore")
	}
}
