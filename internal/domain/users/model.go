package users

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleMember = "member"
)

// ValidRole reports whether r is one of the assignable role labels.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleMember
}

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Tel          string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`

	// Role is picked once after registration; empty until then.
	Role       string
	IsVerified bool

	Image *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
