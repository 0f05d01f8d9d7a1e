// internal/domain/models/user.go
package models

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can sign in. Every member owns at most one
// Employer, and through it the jobs that employer has posted.
//
// Auth fields:
//   - LoginID: the registered email, stored lowercase
//   - LoginIDCI: case/diacritic-insensitive version for matching (folded)
//   - PasswordHash: bcrypt hash, never serialized to JSON
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	LastName   string             `bson:"last_name" json:"last_name"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"`

	LoginID   *string `bson:"login_id" json:"login_id"`
	LoginIDCI *string `bson:"login_id_ci,omitempty" json:"-"`
	Email     *string `bson:"email" json:"email"`

	PasswordHash *string `bson:"password_hash,omitempty" json:"-"`

	Role   string `bson:"role" json:"role"`
	Status string `bson:"status,omitempty" json:"status,omitempty"` // active, disabled

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}

// DisplayName prefers the full name and falls back to the login id.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.LoginID != nil {
		return *u.LoginID
	}
	return ""
}

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// AllRoles returns all valid user roles.
func AllRoles() []string {
	return []string{
		RoleAdmin,
		RoleMember,
	}
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

// User statuses
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// IsValidStatus reports whether s is a recognized user status.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusDisabled
}
