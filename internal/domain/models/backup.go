// internal/domain/models/backup.go
package models

import (
	"encoding/json"
	"time"
)

// Snapshot is the full-state export/import document. Import requires at
// minimum Pages and Config to be present; on acceptance it fully overwrites
// the live pages, tags, config, users, and custom icon collections.
//
// Snapshot JSON differs from the entity types' own JSON: page and user
// password hashes, which API responses drop, are carried here so a restored
// site keeps its credentials. See MarshalJSON/UnmarshalJSON.
type Snapshot struct {
	Pages       []Page        `bson:"pages" json:"pages"`
	Redirects   []Redirect    `bson:"redirects,omitempty" json:"redirects"`
	Config      *SiteSettings `bson:"config" json:"config"`
	Users       []User        `bson:"users,omitempty" json:"users"`
	Tags        []PageTag     `bson:"tags,omitempty" json:"tags"`
	CustomIcons []CustomIcon  `bson:"custom_icons,omitempty" json:"customIcons"`
}

// snapshotPage and snapshotUser re-attach the bcrypt hashes the entity
// JSON forms omit. Without them an exported site re-imports with protected
// pages that no password can ever open and accounts nobody can log into.
type snapshotPage struct {
	Page
	PasswordHash string `json:"passwordHash,omitempty"`
}

type snapshotUser struct {
	User
	PasswordHash string `json:"passwordHash,omitempty"`
}

type snapshotJSON struct {
	Pages       []snapshotPage `json:"pages"`
	Redirects   []Redirect     `json:"redirects"`
	Config      *SiteSettings  `json:"config"`
	Users       []snapshotUser `json:"users"`
	Tags        []PageTag      `json:"tags"`
	CustomIcons []CustomIcon   `json:"customIcons"`
}

// MarshalJSON writes the snapshot with page and user password hashes
// included.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Redirects:   s.Redirects,
		Config:      s.Config,
		Tags:        s.Tags,
		CustomIcons: s.CustomIcons,
	}
	if s.Pages != nil {
		out.Pages = make([]snapshotPage, len(s.Pages))
		for i, p := range s.Pages {
			out.Pages[i] = snapshotPage{Page: p, PasswordHash: p.PasswordHash}
		}
	}
	if s.Users != nil {
		out.Users = make([]snapshotUser, len(s.Users))
		for i, u := range s.Users {
			out.Users[i] = snapshotUser{User: u, PasswordHash: u.PasswordHash}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON mirrors MarshalJSON, restoring the hashes onto the
// entities.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Snapshot{
		Redirects:   in.Redirects,
		Config:      in.Config,
		Tags:        in.Tags,
		CustomIcons: in.CustomIcons,
	}
	if in.Pages != nil {
		s.Pages = make([]Page, len(in.Pages))
		for i, p := range in.Pages {
			p.Page.PasswordHash = p.PasswordHash
			s.Pages[i] = p.Page
		}
	}
	if in.Users != nil {
		s.Users = make([]User, len(in.Users))
		for i, u := range in.Users {
			u.User.PasswordHash = u.PasswordHash
			s.Users[i] = u.User
		}
	}
	return nil
}

// Backup is one retained full-state snapshot. History is capped at
// BackupRetention entries with the oldest evicted first (insertion order).
type Backup struct {
	ID        string    `bson:"_id" json:"id"`
	Label     string    `bson:"label,omitempty" json:"label,omitempty"`
	Snapshot  Snapshot  `bson:"snapshot" json:"snapshot"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// BackupRetention is the maximum number of backups kept.
const BackupRetention = 5
