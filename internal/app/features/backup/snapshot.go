// internal/app/features/backup/snapshot.go
package backup

import (
	"context"
	"fmt"

	iconstore "github.com/dalemusser/stratadocs/internal/app/store/customicons"
	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	settingsstore "github.com/dalemusser/stratadocs/internal/app/store/settings"
	tagstore "github.com/dalemusser/stratadocs/internal/app/store/tags"
	userstore "github.com/dalemusser/stratadocs/internal/app/store/users"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/domain/pagetree"
	"go.mongodb.org/mongo-driver/mongo"
)

// BuildSnapshot assembles the full site state from the live collections.
func BuildSnapshot(ctx context.Context, db *mongo.Database) (models.Snapshot, error) {
	var snap models.Snapshot

	pages, err := pagestore.New(db).GetAll(ctx)
	if err != nil {
		return snap, fmt.Errorf("snapshot pages: %w", err)
	}
	settings, err := settingsstore.New(db).Get(ctx)
	if err != nil {
		return snap, fmt.Errorf("snapshot settings: %w", err)
	}
	users, err := userstore.New(db).GetAll(ctx)
	if err != nil {
		return snap, fmt.Errorf("snapshot users: %w", err)
	}
	tags, err := tagstore.New(db).GetAll(ctx)
	if err != nil {
		return snap, fmt.Errorf("snapshot tags: %w", err)
	}
	icons, err := iconstore.New(db).GetAll(ctx)
	if err != nil {
		return snap, fmt.Errorf("snapshot icons: %w", err)
	}

	if pages == nil {
		pages = []models.Page{}
	}

	snap.Pages = pages
	snap.Config = settings
	snap.Redirects = settings.Redirects
	snap.Users = users
	snap.Tags = tags
	snap.CustomIcons = icons
	return snap, nil
}

// ValidateSnapshot checks an incoming snapshot before any collection is
// touched. Import and restore are all-or-nothing: a snapshot that fails here
// leaves the live site untouched.
//
// Blocks of unknown types pass validation; they round-trip through the
// snapshot untouched.
func ValidateSnapshot(registry *content.Registry, snap models.Snapshot) error {
	if snap.Pages == nil {
		return fmt.Errorf("snapshot is missing the pages collection")
	}
	if snap.Config == nil {
		return fmt.Errorf("snapshot is missing the site config")
	}

	seen := make(map[string]struct{}, len(snap.Pages))
	for i, p := range snap.Pages {
		if p.ID == "" {
			return fmt.Errorf("page %d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate page id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Title == "" {
			return fmt.Errorf("page %q has no title", p.ID)
		}
		if !models.IsValidStatus(p.Status) {
			return fmt.Errorf("page %q has invalid status %q", p.ID, p.Status)
		}
		if p.Visibility != "" && !models.IsValidVisibility(p.Visibility) {
			return fmt.Errorf("page %q has invalid visibility %q", p.ID, p.Visibility)
		}
		// A protected page without its hash can never be opened again.
		if p.PasswordProtected && p.PasswordHash == "" {
			return fmt.Errorf("page %q is password protected but carries no password hash", p.ID)
		}
		if p.Content != nil {
			if err := registry.ValidateDocument(*p.Content); err != nil {
				return fmt.Errorf("page %q: %w", p.ID, err)
			}
		}
		for _, tab := range p.Tabs {
			if err := registry.ValidateDocument(tab.Content); err != nil {
				return fmt.Errorf("page %q tab %q: %w", p.ID, tab.Title, err)
			}
		}
	}

	// Every parent reference must resolve within the snapshot itself.
	if orphans := pagetree.Build(snap.Pages).OrphanIDs(); len(orphans) > 0 {
		return fmt.Errorf("snapshot has %d pages with unresolvable parents (first: %q)", len(orphans), orphans[0])
	}

	for _, u := range snap.Users {
		if u.LoginID == "" || !models.IsValidRole(u.Role) {
			return fmt.Errorf("snapshot user %q is invalid", u.ID)
		}
	}

	return nil
}

// ApplySnapshot overwrites the live collections with the snapshot contents.
// Callers must run ValidateSnapshot first.
func ApplySnapshot(ctx context.Context, db *mongo.Database, snap models.Snapshot) error {
	if err := pagestore.New(db).ReplaceAll(ctx, snap.Pages); err != nil {
		return fmt.Errorf("apply pages: %w", err)
	}
	if err := tagstore.New(db).ReplaceAll(ctx, snap.Tags); err != nil {
		return fmt.Errorf("apply tags: %w", err)
	}
	if err := iconstore.New(db).ReplaceAll(ctx, snap.CustomIcons); err != nil {
		return fmt.Errorf("apply icons: %w", err)
	}

	// An empty user set would lock everyone out of the admin surface, so
	// the live accounts survive a snapshot that carries none.
	if len(snap.Users) > 0 {
		if err := userstore.New(db).ReplaceAll(ctx, snap.Users); err != nil {
			return fmt.Errorf("apply users: %w", err)
		}
	}

	settings := *snap.Config
	if snap.Redirects != nil {
		settings.Redirects = snap.Redirects
	}
	if err := settingsstore.New(db).Save(ctx, settings); err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}
	return nil
}
