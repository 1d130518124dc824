// internal/domain/models/user.go
package models

import "time"

// User represents an editorial user of the application.
//
// Auth fields:
//   - LoginID: What the user types to identify themselves (stored lowercase)
//   - PasswordHash: bcrypt hash, never serialized to JSON
type User struct {
	ID       string `bson:"_id" json:"id"`
	FullName string `bson:"full_name" json:"full_name"`

	LoginID      string `bson:"login_id" json:"login_id"` // stored lowercase
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Role   string `bson:"role" json:"role"`                         // admin, editor, viewer
	Status string `bson:"status,omitempty" json:"status,omitempty"` // active, disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// User roles, ordered by rank. Admin outranks editor outranks viewer; a page
// that requires a role admits any role of equal or higher rank.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// AllRoles returns all valid user roles.
func AllRoles() []string {
	return []string{RoleAdmin, RoleEditor, RoleViewer}
}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// RoleRank returns the numeric rank of a role: admin=3, editor=2, viewer=1.
// Unknown roles rank 0, below every valid role.
func RoleRank(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// RoleSatisfies reports whether the given role meets or exceeds the required
// role's rank.
func RoleSatisfies(role, required string) bool {
	return RoleRank(role) >= RoleRank(required) && RoleRank(role) > 0
}

// User statuses
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
