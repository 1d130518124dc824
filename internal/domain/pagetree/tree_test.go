package pagetree

import (
	"testing"

	"github.com/dalemusser/stratadocs/internal/domain/models"
)

func page(id, parentID, slug string, order int) models.Page {
	return models.Page{ID: id, ParentID: parentID, Slug: slug, Order: order, Title: slug}
}

func TestBuild_RootsAndChildren(t *testing.T) {
	pages := []models.Page{
		page("a", "", "alpha", 2),
		page("b", "", "beta", 1),
		page("a1", "a", "one", 1),
		page("a2", "a", "two", 0),
	}

	tree := Build(pages)

	roots := tree.Roots()
	if len(roots) != 2 {
		t.Fatalf("len(roots) = %d, want 2", len(roots))
	}
	if roots[0].Page.ID != "b" || roots[1].Page.ID != "a" {
		t.Errorf("roots order = [%s %s], want [b a]", roots[0].Page.ID, roots[1].Page.ID)
	}

	a, _ := tree.ByID("a")
	if len(a.Children) != 2 {
		t.Fatalf("len(a.Children) = %d, want 2", len(a.Children))
	}
	if a.Children[0].Page.ID != "a2" || a.Children[1].Page.ID != "a1" {
		t.Errorf("children sorted by order = [%s %s], want [a2 a1]",
			a.Children[0].Page.ID, a.Children[1].Page.ID)
	}
}

func TestBuild_DepthAssignment(t *testing.T) {
	pages := []models.Page{
		page("root", "", "root", 0),
		page("mid", "root", "mid", 0),
		page("leaf", "mid", "leaf", 0),
	}

	tree := Build(pages)

	for _, tt := range []struct {
		id    string
		depth int
	}{
		{"root", 0},
		{"mid", 1},
		{"leaf", 2},
	} {
		n, ok := tree.ByID(tt.id)
		if !ok {
			t.Fatalf("ByID(%s) not found", tt.id)
		}
		if n.Depth != tt.depth {
			t.Errorf("depth(%s) = %d, want %d", tt.id, n.Depth, tt.depth)
		}
	}
}

func TestBuild_DepthIsParentPlusOne(t *testing.T) {
	pages := []models.Page{
		page("r", "", "r", 0),
		page("c1", "r", "c1", 0),
		page("c2", "r", "c2", 1),
		page("g1", "c1", "g1", 0),
	}
	tree := Build(pages)

	for _, p := range pages {
		n, _ := tree.ByID(p.ID)
		if p.ParentID == "" {
			if n.Depth != 0 {
				t.Errorf("root %s depth = %d, want 0", p.ID, n.Depth)
			}
			continue
		}
		parent, _ := tree.ByID(p.ParentID)
		if n.Depth != parent.Depth+1 {
			t.Errorf("depth(%s) = %d, want parent depth %d + 1", p.ID, n.Depth, parent.Depth)
		}
	}
}

func TestBuild_OrderTiesBreakByID(t *testing.T) {
	pages := []models.Page{
		page("z", "", "zed", 5),
		page("m", "", "em", 5),
		page("a", "", "ay", 5),
	}
	tree := Build(pages)

	roots := tree.Roots()
	got := []string{roots[0].Page.ID, roots[1].Page.ID, roots[2].Page.ID}
	want := []string{"a", "m", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied order sort = %v, want %v", got, want)
		}
	}
}

func TestBuild_OrphansExcludedAndCounted(t *testing.T) {
	pages := []models.Page{
		page("a", "", "alpha", 0),
		page("lost", "missing-parent", "lost", 0),
	}

	tree := Build(pages)

	if len(tree.Roots()) != 1 {
		t.Errorf("orphan must not be promoted into roots, got %d roots", len(tree.Roots()))
	}
	if tree.OrphanCount() != 1 {
		t.Errorf("OrphanCount() = %d, want 1", tree.OrphanCount())
	}
	if got := tree.OrphanIDs(); len(got) != 1 || got[0] != "lost" {
		t.Errorf("OrphanIDs() = %v, want [lost]", got)
	}
	// Orphans stay reachable by id for integrity tooling.
	if _, ok := tree.ByID("lost"); !ok {
		t.Error("orphan should still be reachable via ByID")
	}
}

func TestBuild_EmptyCollection(t *testing.T) {
	tree := Build(nil)
	if len(tree.Roots()) != 0 || tree.OrphanCount() != 0 {
		t.Error("empty collection should build an empty tree")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	pages := []models.Page{
		page("a", "", "alpha", 1),
		page("b", "a", "beta", 1),
	}
	first := Build(pages)
	second := Build(pages)

	if len(first.Roots()) != len(second.Roots()) {
		t.Error("rebuild should produce an identical projection")
	}
	n1, _ := first.ByID("b")
	n2, _ := second.ByID("b")
	if n1.Depth != n2.Depth {
		t.Errorf("depth differs across rebuilds: %d vs %d", n1.Depth, n2.Depth)
	}
}
