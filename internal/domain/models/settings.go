// internal/domain/models/settings.go
package models

import "time"

// SiteSettings is the singleton site configuration document.
type SiteSettings struct {
	SiteName    string `bson:"site_name" json:"siteName"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// BrandingSVG is the site logo markup. It is sanitized on the upload
	// path before storage.
	BrandingSVG string `bson:"branding_svg,omitempty" json:"brandingSvg,omitempty"`

	// Redirects maps old paths to new paths. They are part of the backup
	// format and round-trip through export/import.
	Redirects []Redirect `bson:"redirects,omitempty" json:"redirects,omitempty"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Redirect maps a request path to a replacement path.
type Redirect struct {
	From string `bson:"from" json:"from"`
	To   string `bson:"to" json:"to"`
}

// Default site settings values.
const (
	DefaultSiteName = "Stratadocs"
)
