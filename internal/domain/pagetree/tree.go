// internal/domain/pagetree/tree.go

// Package pagetree builds the navigable page hierarchy from the flat page
// collection. The tree is a derived projection: it is never persisted, and
// it is rebuilt in full on demand — the page collection is small and changes
// at editorial cadence, so incremental maintenance would buy nothing.
package pagetree

import (
	"errors"
	"sort"

	"github.com/dalemusser/stratadocs/internal/domain/models"
)

// MaxDepth is the maximum number of child levels below a root page: a root
// (depth 0) may have descendants down to depth 3, four levels in total.
// Enforced at page creation, not retroactively.
const MaxDepth = 3

// ErrBrokenChain reports a parent walk that hit a dangling parent reference
// or exceeded the depth bound (a cycle from corrupted data). It is a
// data-integrity condition, not a normal control-flow branch.
var ErrBrokenChain = errors.New("broken parent chain")

// Node is one page in the tree projection, with its ordered children and
// computed depth (roots are depth 0).
type Node struct {
	Page     models.Page
	Children []*Node
	Depth    int
}

// Tree is the rebuilt hierarchy over a flat page collection. Pages whose
// ParentID points at a missing page are orphans: they are excluded from the
// roots rather than silently mis-nested, and their count is surfaced for
// integrity checks. Orphans remain reachable through ByID.
type Tree struct {
	roots  []*Node
	byID   map[string]*Node
	orphan []string
}

// Build constructs the tree from the flat page collection. Every call is a
// full rebuild; the operation is idempotent and has no side effects.
func Build(pages []models.Page) *Tree {
	t := &Tree{byID: make(map[string]*Node, len(pages))}

	for _, p := range pages {
		t.byID[p.ID] = &Node{Page: p}
	}

	for _, p := range pages {
		node := t.byID[p.ID]
		if p.ParentID == "" {
			t.roots = append(t.roots, node)
			continue
		}
		parent, ok := t.byID[p.ParentID]
		if !ok {
			t.orphan = append(t.orphan, p.ID)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(t.roots)
	for _, root := range t.roots {
		assignDepth(root, 0)
	}
	return t
}

// sortSiblings orders a sibling group by Order ascending; ties break by id
// so the result is deterministic regardless of input order.
func sortSiblings(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Page.Order != nodes[j].Page.Order {
			return nodes[i].Page.Order < nodes[j].Page.Order
		}
		return nodes[i].Page.ID < nodes[j].Page.ID
	})
}

func assignDepth(n *Node, depth int) {
	n.Depth = depth
	sortSiblings(n.Children)
	for _, child := range n.Children {
		assignDepth(child, depth+1)
	}
}

// Roots returns the root nodes in sibling order.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// ByID returns the node for a page id. Orphaned pages are found here even
// though they are absent from the root hierarchy.
func (t *Tree) ByID(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// OrphanIDs returns the ids of pages whose ParentID references a missing
// page.
func (t *Tree) OrphanIDs() []string {
	return t.orphan
}

// OrphanCount returns the number of orphaned pages.
func (t *Tree) OrphanCount() int {
	return len(t.orphan)
}
