package pagetree

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratadocs/internal/domain/models"
)

func threeLevels() []models.Page {
	return []models.Page{
		page("root", "", "guides", 0),
		page("mid", "root", "layout", 0),
		page("leaf", "mid", "spacing", 0),
		page("other", "", "components", 1),
		// Same slug as "mid" but under a different parent; must not
		// shadow resolution.
		page("decoy", "other", "layout", 0),
	}
}

func TestResolvePath(t *testing.T) {
	tree := Build(threeLevels())

	tests := []struct {
		name     string
		segments []string
		wantID   string
		wantOK   bool
	}{
		{"single segment", []string{"guides"}, "root", true},
		{"two segments", []string{"guides", "layout"}, "mid", true},
		{"three segments", []string{"guides", "layout", "spacing"}, "leaf", true},
		{"same slug different scope", []string{"components", "layout"}, "decoy", true},
		{"missing root", []string{"nope"}, "", false},
		{"missing middle", []string{"guides", "nope", "spacing"}, "", false},
		{"segment past a leaf", []string{"guides", "layout", "spacing", "extra"}, "", false},
		{"empty path", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := tree.ResolvePath(tt.segments)
			if ok != tt.wantOK {
				t.Fatalf("ResolvePath(%v) ok = %v, want %v", tt.segments, ok, tt.wantOK)
			}
			if ok && node.Page.ID != tt.wantID {
				t.Errorf("ResolvePath(%v) = %s, want %s", tt.segments, node.Page.ID, tt.wantID)
			}
		})
	}
}

func TestBreadcrumbs_RootToTarget(t *testing.T) {
	tree := Build(threeLevels())

	trail, err := tree.Breadcrumbs("leaf")
	if err != nil {
		t.Fatalf("Breadcrumbs() error = %v", err)
	}
	if len(trail) != 3 {
		t.Fatalf("len(trail) = %d, want 3", len(trail))
	}
	want := []string{"root", "mid", "leaf"}
	for i, p := range trail {
		if p.ID != want[i] {
			t.Errorf("trail[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestBreadcrumbs_RootPage(t *testing.T) {
	tree := Build(threeLevels())

	trail, err := tree.Breadcrumbs("root")
	if err != nil {
		t.Fatalf("Breadcrumbs() error = %v", err)
	}
	if len(trail) != 1 || trail[0].ID != "root" {
		t.Errorf("trail = %v, want just the root page", trail)
	}
}

func TestBreadcrumbs_DanglingParent(t *testing.T) {
	pages := []models.Page{
		page("lost", "missing", "lost", 0),
	}
	tree := Build(pages)

	trail, err := tree.Breadcrumbs("lost")
	if !errors.Is(err, ErrBrokenChain) {
		t.Fatalf("error = %v, want ErrBrokenChain", err)
	}
	// The partial trail is still returned for reporting.
	if len(trail) != 1 || trail[0].ID != "lost" {
		t.Errorf("partial trail = %v, want [lost]", trail)
	}
}

func TestBreadcrumbs_CycleIsBounded(t *testing.T) {
	// Corrupted data: a and b point at each other. The walk must
	// terminate with ErrBrokenChain instead of looping.
	pages := []models.Page{
		page("a", "b", "a", 0),
		page("b", "a", "b", 0),
	}
	tree := Build(pages)

	_, err := tree.Breadcrumbs("a")
	if !errors.Is(err, ErrBrokenChain) {
		t.Fatalf("error = %v, want ErrBrokenChain", err)
	}
}

func TestBreadcrumbs_UnknownID(t *testing.T) {
	tree := Build(threeLevels())
	if _, err := tree.Breadcrumbs("ghost"); !errors.Is(err, ErrBrokenChain) {
		t.Errorf("error = %v, want ErrBrokenChain", err)
	}
}
