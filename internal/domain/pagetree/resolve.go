// internal/domain/pagetree/resolve.go
package pagetree

import "github.com/dalemusser/stratadocs/internal/domain/models"

// ResolvePath walks slug segments from root scope down the tree. Each
// segment must match exactly one page whose slug equals the segment and
// whose ParentID equals the current scope (the sibling slug-uniqueness
// invariant guarantees at most one). Any miss fails the whole resolution.
func (t *Tree) ResolvePath(segments []string) (*Node, bool) {
	if len(segments) == 0 {
		return nil, false
	}

	scope := t.roots
	var current *Node
	for _, seg := range segments {
		current = nil
		for _, n := range scope {
			if n.Page.Slug == seg {
				current = n
				break
			}
		}
		if current == nil {
			return nil, false
		}
		scope = current.Children
	}
	return current, true
}

// Breadcrumbs walks ParentID backwards from the target page and returns the
// chain in root-to-target order. The walk is bounded by MaxDepth+1 steps so
// corrupted data with a parent cycle cannot loop forever; a dangling parent
// reference or an over-long chain returns the pages collected so far along
// with ErrBrokenChain.
func (t *Tree) Breadcrumbs(id string) ([]models.Page, error) {
	node, ok := t.byID[id]
	if !ok {
		return nil, ErrBrokenChain
	}

	trail := []models.Page{node.Page}
	cur := node.Page
	for i := 0; cur.ParentID != ""; i++ {
		if i >= MaxDepth+1 {
			return reverse(trail), ErrBrokenChain
		}
		parent, ok := t.byID[cur.ParentID]
		if !ok {
			return reverse(trail), ErrBrokenChain
		}
		trail = append(trail, parent.Page)
		cur = parent.Page
	}
	return reverse(trail), nil
}

func reverse(pages []models.Page) []models.Page {
	for i, j := 0, len(pages)-1; i < j; i, j = i+1, j-1 {
		pages[i], pages[j] = pages[j], pages[i]
	}
	return pages
}
