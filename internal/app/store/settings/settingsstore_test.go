package settingsstore

import (
	"testing"

	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Get_DefaultsWhenUnset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q, want default %q", settings.SiteName, models.DefaultSiteName)
	}

	exists, err := store.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true before any save")
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings := models.SiteSettings{
		SiteName:    "Design System Docs",
		Description: "Component documentation",
		Redirects: []models.Redirect{
			{From: "/old-guide", To: "/guides/new"},
		},
	}
	if err := store.Save(ctx, settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SiteName != "Design System Docs" {
		t.Errorf("SiteName = %q", got.SiteName)
	}
	if len(got.Redirects) != 1 || got.Redirects[0].From != "/old-guide" {
		t.Errorf("Redirects = %+v", got.Redirects)
	}
	if got.UpdatedAt == nil || got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped")
	}
}

func TestStore_Save_SingletonUpsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Save(ctx, models.SiteSettings{SiteName: "First"})
	store.Save(ctx, models.SiteSettings{SiteName: "Second"})

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SiteName != "Second" {
		t.Errorf("SiteName = %q, want the latest save", got.SiteName)
	}

	count, err := db.Collection("site_settings").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if count != 1 {
		t.Errorf("settings documents = %d, want singleton", count)
	}
}
