// internal/domain/models/tag.go
package models

import "time"

// PageTag is a named label pages can carry. Pages reference tags by label
// string only: deleting a PageTag does not remove the label from pages that
// carry it.
type PageTag struct {
	Label       string `bson:"_id" json:"label"`
	Color       string `bson:"color,omitempty" json:"color,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
