// internal/domain/models/page.go
package models

import (
	"time"

	"github.com/dalemusser/stratadocs/internal/domain/content"
)

// Page is an editable content page in the site tree. A page either carries a
// single block document (Content) or a set of tabs that each wrap their own
// document (Tabs); the two view modes are mutually exclusive.
//
// Pages form a tree through ParentID. ParentID is a reference to another page
// id, not ownership: the tree projection is rebuilt from the flat collection
// whenever navigation needs it (see domain/pagetree).
type Page struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Slug     string `bson:"slug" json:"slug"`          // unique among siblings sharing ParentID
	ParentID string `bson:"parent_id" json:"parentId"` // empty for root pages
	Order    int    `bson:"order" json:"order"`        // sibling sort key; gaps are fine
	Summary  string `bson:"summary,omitempty" json:"summary,omitempty"`
	Icon     string `bson:"icon,omitempty" json:"icon,omitempty"` // symbolic icon name
	Status   string `bson:"status" json:"status"`                 // draft, published, archived

	Tags []string `bson:"tags,omitempty" json:"tags,omitempty"` // weak references to PageTag labels

	// Content is the page's block document. Nil when the page uses Tabs.
	Content *content.Document `bson:"content,omitempty" json:"content,omitempty"`

	// Tabs, when non-empty, replaces Content as the page body.
	Tabs []PageTab `bson:"tabs,omitempty" json:"tabs,omitempty"`

	// Layout selects the rendering template; LayoutConfig carries
	// layout-specific structured settings.
	Layout       string       `bson:"layout,omitempty" json:"layout,omitempty"`
	LayoutConfig LayoutConfig `bson:"layout_config,omitempty" json:"layoutConfig,omitempty"`

	// Access control fields. RequiredRole is only meaningful when
	// Visibility is role-restricted. PasswordHash is a bcrypt hash and is
	// never exposed through JSON.
	Visibility        string `bson:"visibility" json:"visibility"`
	RequiredRole      string `bson:"required_role,omitempty" json:"requiredRole,omitempty"`
	PasswordProtected bool   `bson:"password_protected" json:"passwordProtected"`
	PasswordHash      string `bson:"password_hash,omitempty" json:"-"`
	PasswordHint      string `bson:"password_hint,omitempty" json:"passwordHint,omitempty"`

	LastUpdated time.Time `bson:"last_updated" json:"lastUpdated"`
}

// PageTab wraps one document inside a tabbed page.
type PageTab struct {
	ID      string           `bson:"id" json:"id"`
	Title   string           `bson:"title" json:"title"`
	Content content.Document `bson:"content" json:"content"`
}

// LayoutConfig holds layout-specific display settings. Fields are only
// meaningful for the layouts that read them.
type LayoutConfig struct {
	HeroTitle    string `bson:"hero_title,omitempty" json:"heroTitle,omitempty"`
	HeroSubtitle string `bson:"hero_subtitle,omitempty" json:"heroSubtitle,omitempty"`
	HeroImage    string `bson:"hero_image,omitempty" json:"heroImage,omitempty"`
	ShowChildren bool   `bson:"show_children,omitempty" json:"showChildren,omitempty"`
	ShowToc      bool   `bson:"show_toc,omitempty" json:"showToc,omitempty"`
	Columns      int    `bson:"columns,omitempty" json:"columns,omitempty"`
}

// Page statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// AllStatuses returns all valid page statuses.
func AllStatuses() []string {
	return []string{StatusDraft, StatusPublished, StatusArchived}
}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range AllStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Page visibility modes
const (
	VisibilityPublic         = "public"
	VisibilityAuthenticated  = "authenticated"
	VisibilityRoleRestricted = "role-restricted"
)

// AllVisibilities returns all valid visibility modes.
func AllVisibilities() []string {
	return []string{VisibilityPublic, VisibilityAuthenticated, VisibilityRoleRestricted}
}

// IsValidVisibility checks if a visibility mode is valid.
func IsValidVisibility(v string) bool {
	for _, m := range AllVisibilities() {
		if m == v {
			return true
		}
	}
	return false
}

// Page layouts
const (
	LayoutDefault   = "default"
	LayoutLanding   = "landing"
	LayoutGrid      = "grid"
	LayoutFullWidth = "full-width"
	LayoutArticle   = "article"
	LayoutComponent = "component"
)

// AllLayouts returns all valid page layouts.
func AllLayouts() []string {
	return []string{
		LayoutDefault,
		LayoutLanding,
		LayoutGrid,
		LayoutFullWidth,
		LayoutArticle,
		LayoutComponent,
	}
}

// IsValidLayout checks if a layout is valid. The empty string is accepted and
// treated as LayoutDefault.
func IsValidLayout(layout string) bool {
	if layout == "" {
		return true
	}
	for _, l := range AllLayouts() {
		if l == layout {
			return true
		}
	}
	return false
}

// HasTabs reports whether the page body is tabbed.
func (p *Page) HasTabs() bool {
	return len(p.Tabs) > 0
}

// EffectiveLayout returns the layout to render with, defaulting empty to
// LayoutDefault.
func (p *Page) EffectiveLayout() string {
	if p.Layout == "" {
		return LayoutDefault
	}
	return p.Layout
}
