package backup

import (
	"encoding/json"
	"strings"
	"testing"

	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	settingsstore "github.com/dalemusser/stratadocs/internal/app/store/settings"
	userstore "github.com/dalemusser/stratadocs/internal/app/store/users"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/testutil"
	"go.uber.org/zap"
)

func validSnapshot() models.Snapshot {
	return models.Snapshot{
		Pages: []models.Page{
			{ID: "p1", Title: "Home", Slug: "home", Status: models.StatusPublished, Visibility: models.VisibilityPublic},
			{ID: "p2", Title: "Child", Slug: "child", ParentID: "p1", Status: models.StatusDraft, Visibility: models.VisibilityPublic},
		},
		Config: &models.SiteSettings{SiteName: "Test Site"},
		Users: []models.User{
			{ID: "u1", LoginID: "admin", Role: models.RoleAdmin, Status: models.UserStatusActive},
		},
		Tags: []models.PageTag{{Label: "api"}},
	}
}

func TestValidateSnapshot(t *testing.T) {
	registry := content.NewRegistry(zap.NewNop())

	t.Run("valid", func(t *testing.T) {
		if err := ValidateSnapshot(registry, validSnapshot()); err != nil {
			t.Errorf("ValidateSnapshot() error = %v", err)
		}
	})

	t.Run("missing pages", func(t *testing.T) {
		snap := validSnapshot()
		snap.Pages = nil
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("snapshot without pages should fail")
		}
	})

	t.Run("missing config", func(t *testing.T) {
		snap := validSnapshot()
		snap.Config = nil
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("snapshot without config should fail")
		}
	})

	t.Run("duplicate page ids", func(t *testing.T) {
		snap := validSnapshot()
		snap.Pages = append(snap.Pages, snap.Pages[0])
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("duplicate page ids should fail")
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		snap := validSnapshot()
		snap.Pages[0].Status = "limbo"
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("invalid page status should fail")
		}
	})

	t.Run("unresolvable parent", func(t *testing.T) {
		snap := validSnapshot()
		snap.Pages[1].ParentID = "ghost"
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("orphaned page should fail")
		}
	})

	t.Run("protected page without hash", func(t *testing.T) {
		snap := validSnapshot()
		snap.Pages[0].PasswordProtected = true
		snap.Pages[0].PasswordHash = ""
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("protected page with no hash should fail")
		}
	})

	t.Run("invalid user", func(t *testing.T) {
		snap := validSnapshot()
		snap.Users[0].Role = "overlord"
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("invalid user role should fail")
		}
	})

	t.Run("malformed known block", func(t *testing.T) {
		snap := validSnapshot()
		doc := content.Document{Blocks: []content.Block{
			{Type: content.TypeHeader, Data: json.RawMessage(`{"level":99}`)},
		}}
		snap.Pages[0].Content = &doc
		if err := ValidateSnapshot(registry, snap); err == nil {
			t.Error("malformed header block should fail")
		}
	})

	t.Run("unknown block type passes", func(t *testing.T) {
		snap := validSnapshot()
		doc := content.Document{Blocks: []content.Block{
			{Type: "time-machine", Data: json.RawMessage(`{"year":1985}`)},
		}}
		snap.Pages[0].Content = &doc
		if err := ValidateSnapshot(registry, snap); err != nil {
			t.Errorf("unknown block type should pass: %v", err)
		}
	})
}

func TestSnapshotJSONCarriesPasswordHashes(t *testing.T) {
	snap := validSnapshot()
	snap.Pages[0].PasswordProtected = true
	snap.Pages[0].PasswordHash = "$2a$10$pagehash"
	snap.Users[0].PasswordHash = "$2a$10$userhash"

	// The entity types drop hashes from their own JSON (API responses),
	// so the export format has to carry them itself.
	pageJSON, err := json.Marshal(snap.Pages[0])
	if err != nil {
		t.Fatalf("marshal page: %v", err)
	}
	if strings.Contains(string(pageJSON), "pagehash") {
		t.Error("page JSON must not expose the password hash")
	}

	out, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	var got models.Snapshot
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	if !got.Pages[0].PasswordProtected {
		t.Error("PasswordProtected lost in round trip")
	}
	if got.Pages[0].PasswordHash != "$2a$10$pagehash" {
		t.Errorf("page hash after round trip = %q, want the original", got.Pages[0].PasswordHash)
	}
	if got.Users[0].PasswordHash != "$2a$10$userhash" {
		t.Errorf("user hash after round trip = %q, want the original", got.Users[0].PasswordHash)
	}

	// The re-imported snapshot must still validate: a protected page that
	// lost its hash would be rejected.
	if err := ValidateSnapshot(content.NewRegistry(zap.NewNop()), got); err != nil {
		t.Errorf("round-tripped snapshot should validate: %v", err)
	}
}

func TestApplySnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Seed live data that the snapshot should fully replace.
	pages := pagestore.New(db)
	if _, err := pages.Insert(ctx, models.Page{Title: "Old", Slug: "old", Status: models.StatusPublished}); err != nil {
		t.Fatalf("seed page: %v", err)
	}
	users := userstore.New(db)
	if _, err := users.Create(ctx, models.User{LoginID: "survivor", Role: models.RoleAdmin, Status: models.UserStatusActive}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	snap := validSnapshot()
	snap.Users = nil // simulate an export that omitted accounts
	if err := ApplySnapshot(ctx, db, snap); err != nil {
		t.Fatalf("ApplySnapshot() error = %v", err)
	}

	gotPages, err := pages.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll pages: %v", err)
	}
	if len(gotPages) != 2 {
		t.Errorf("pages after apply = %d, want 2", len(gotPages))
	}
	for _, p := range gotPages {
		if p.Slug == "old" {
			t.Error("pre-existing page should have been replaced")
		}
	}

	// Live accounts survive a snapshot with no users.
	gotUsers, err := users.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll users: %v", err)
	}
	if len(gotUsers) != 1 || gotUsers[0].LoginID != "survivor" {
		t.Errorf("users after apply = %+v, want the live account untouched", gotUsers)
	}

	settings, err := settingsstore.New(db).Get(ctx)
	if err != nil {
		t.Fatalf("settings Get: %v", err)
	}
	if settings.SiteName != "Test Site" {
		t.Errorf("site name = %q, want snapshot value", settings.SiteName)
	}
}

func TestApplySnapshot_ReplacesUsersWhenPresent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	if _, err := users.Create(ctx, models.User{LoginID: "doomed", Role: models.RoleEditor, Status: models.UserStatusActive}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	snap := validSnapshot()
	if err := ApplySnapshot(ctx, db, snap); err != nil {
		t.Fatalf("ApplySnapshot() error = %v", err)
	}

	got, err := users.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll users: %v", err)
	}
	if len(got) != 1 || got[0].LoginID != "admin" {
		t.Errorf("users after apply = %+v, want only the snapshot account", got)
	}
}

func TestBuildSnapshotRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := ApplySnapshot(ctx, db, validSnapshot()); err != nil {
		t.Fatalf("ApplySnapshot() error = %v", err)
	}

	built, err := BuildSnapshot(ctx, db)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if len(built.Pages) != 2 {
		t.Errorf("built pages = %d, want 2", len(built.Pages))
	}
	if built.Config == nil || built.Config.SiteName != "Test Site" {
		t.Errorf("built config = %+v, want snapshot settings", built.Config)
	}
	if err := ValidateSnapshot(content.NewRegistry(zap.NewNop()), built); err != nil {
		t.Errorf("built snapshot should validate: %v", err)
	}
}
