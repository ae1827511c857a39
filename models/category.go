package models

import (
	"time"
)

// Category represents a menu category (e.g. "Noodles", "Drinks")
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"` // 2-20 characters, unique across categories
	Order     int       `gorm:"uniqueIndex;not null" json:"order"` // display position, assigned max+1 on create
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
