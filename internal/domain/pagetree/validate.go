// internal/domain/pagetree/validate.go
package pagetree

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dalemusser/stratadocs/internal/domain/models"
)

// Creation-time invariant violations. Each is distinguishable so callers
// can report the specific reason the page was rejected.
var (
	ErrParentNotFound = errors.New("parent page does not exist")
	ErrMaxDepth       = errors.New("maximum nesting depth exceeded")
	ErrSlugTaken      = errors.New("slug already used by a sibling page")
	ErrSlugInvalid    = errors.New("slug is not a valid path segment")
	ErrSlugReserved   = errors.New("slug is reserved at the root level")
)

// reservedRootSlugs are path prefixes owned by the application's own route
// surface. A root page with one of these slugs would shadow (or be shadowed
// by) a mounted route, so creation rejects them.
var reservedRootSlugs = map[string]struct{}{
	"admin":  {},
	"login":  {},
	"logout": {},
	"health": {},
	"static": {},
	"assets": {},
	"api":    {},
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateUpsert checks the tree invariants for creating or replacing a page
// within the given flat collection: the slug must be a valid path segment
// and unique among siblings, the parent must exist, and the page must not
// land deeper than MaxDepth. The page's own id is excluded from the sibling
// check so a full-entity replace of an existing page passes.
func ValidateUpsert(pages []models.Page, p models.Page) error {
	if !slugPattern.MatchString(p.Slug) {
		return fmt.Errorf("%w: %q", ErrSlugInvalid, p.Slug)
	}
	if p.ParentID == "" {
		if _, reserved := reservedRootSlugs[p.Slug]; reserved {
			return fmt.Errorf("%w: %q", ErrSlugReserved, p.Slug)
		}
	}

	if p.ParentID != "" {
		tree := Build(pages)
		parent, ok := tree.ByID(p.ParentID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrParentNotFound, p.ParentID)
		}
		// A parent already at MaxDepth cannot take children.
		if parent.Depth >= MaxDepth {
			return fmt.Errorf("%w: parent %s is at depth %d, max is %d",
				ErrMaxDepth, p.ParentID, parent.Depth, MaxDepth)
		}
	}

	for _, existing := range pages {
		if existing.ID == p.ID {
			continue
		}
		if existing.ParentID == p.ParentID && existing.Slug == p.Slug {
			return fmt.Errorf("%w: %q under parent %q", ErrSlugTaken, p.Slug, p.ParentID)
		}
	}
	return nil
}

// Descendants returns the ids of every transitive descendant of the given
// page, for cascade deletion. The root id itself is not included.
func Descendants(pages []models.Page, id string) []string {
	children := make(map[string][]string, len(pages))
	for _, p := range pages {
		if p.ParentID != "" {
			children[p.ParentID] = append(children[p.ParentID], p.ID)
		}
	}

	var out []string
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}
