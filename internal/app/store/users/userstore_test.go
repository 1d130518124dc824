package userstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		LoginID:      "  Editor  ",
		PasswordHash: "$2a$12$fakehash",
		Role:         "Editor",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create() should generate an id")
	}
	if created.LoginID != "editor" {
		t.Errorf("LoginID = %q, want normalized %q", created.LoginID, "editor")
	}
	if created.Role != models.RoleEditor {
		t.Errorf("Role = %q", created.Role)
	}
	if created.Status != models.UserStatusActive {
		t.Errorf("Status = %q, want default active", created.Status)
	}

	got, err := store.GetByLoginID(ctx, "EDITOR")
	if err != nil {
		t.Fatalf("GetByLoginID() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByLoginID() found %q, want %q", got.ID, created.ID)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{LoginID: "x", Role: "superuser"}); err == nil {
		t.Error("invalid role should be rejected")
	}
	if _, err := store.Create(ctx, models.User{LoginID: "x", Role: "viewer", Status: "frozen"}); err == nil {
		t.Error("invalid status should be rejected")
	}
}

func TestStore_Create_DuplicateLoginID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{LoginID: "editor", Role: "editor"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := store.Create(ctx, models.User{LoginID: "EDITOR", Role: "viewer"})
	if !errors.Is(err, ErrDuplicateLoginID) {
		t.Errorf("error = %v, want ErrDuplicateLoginID", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, models.User{LoginID: "editor", Role: "editor"})

	newHash := "$2a$12$newhash"
	err := store.Update(ctx, created.ID, UserUpdate{
		LoginID:      "editor",
		Role:         "admin",
		Status:       models.UserStatusDisabled,
		PasswordHash: &newHash,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := store.GetByID(ctx, created.ID)
	if got.Role != models.RoleAdmin || got.Status != models.UserStatusDisabled {
		t.Errorf("update did not persist: %+v", got)
	}
	if got.PasswordHash != newHash {
		t.Error("password hash should be updated")
	}

	if err := store.Update(ctx, "missing", UserUpdate{LoginID: "x", Role: "viewer", Status: "active"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, models.User{LoginID: "editor", Role: "editor"})

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Error("user should be gone")
	}
}

func TestFetcher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, models.User{LoginID: "editor", Role: "editor"})

	fetcher := NewFetcher(db, nil)

	su := fetcher.FetchUser(ctx, created.ID)
	if su == nil {
		t.Fatal("FetchUser() = nil for an active user")
	}
	if su.Role != models.RoleEditor || su.LoginID != "editor" {
		t.Errorf("session user = %+v", su)
	}

	// Disabled users invalidate their sessions.
	store.Update(ctx, created.ID, UserUpdate{LoginID: "editor", Role: "editor", Status: models.UserStatusDisabled})
	if su := fetcher.FetchUser(ctx, created.ID); su != nil {
		t.Error("FetchUser() should return nil for a disabled user")
	}

	if su := fetcher.FetchUser(ctx, "missing"); su != nil {
		t.Error("FetchUser() should return nil for an unknown id")
	}
}
