package models

import (
	"time"
)

// Role values assignable to a user at sign-up
const (
	RoleOwner  = "OWNER"
	RoleClient = "CLIENT"
)

// User represents an account in the system (restaurant owner or client)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nickname     string    `gorm:"uniqueIndex;not null" json:"nickname"` // 3-15 alphanumeric characters
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null" json:"role"` // "OWNER" or "CLIENT"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsValidRole reports whether role is one of the assignable role values.
func IsValidRole(role string) bool {
	return role == RoleOwner || role == RoleClient
}
