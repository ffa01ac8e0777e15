package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Admin is a dashboard user. Password holds only the bcrypt hash; the
// store hashes the plaintext before insert and the field never appears
// in API responses.
type Admin struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:admin" json:"role"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	gorm.Model `json:"-"`
}

// ValidRole reports whether r is a known admin role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager
}
