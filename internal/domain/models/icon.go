// internal/domain/models/icon.go
package models

import "time"

// CustomIcon is an SVG icon uploaded by an editor. The SVG markup is
// sanitized on the upload path before it ever reaches this model (see
// system/svgsanitize); it is trusted from then on.
type CustomIcon struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"` // unique symbolic name used by icon blocks
	Category string `bson:"category,omitempty" json:"category,omitempty"`
	SVG      string `bson:"svg" json:"svg"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
