package models

import (
	"time"
)

// MenuStatusOnSale is the default lifecycle tag for a newly created menu.
// The status vocabulary is free-form ("ON_SALE", "SOLD_OUT", ...), not an enum.
const MenuStatusOnSale = "ON_SALE"

// Menu represents a single dish offered under a category
type Menu struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`        // 2-20 characters
	Description string    `gorm:"not null" json:"description"` // 5-40 characters
	ImageKey    string    `json:"-"`                           // S3 object key for the menu photo
	ImageURL    string    `gorm:"-" json:"image,omitempty"`    // computed field, presigned URL for the photo
	Price       int       `gorm:"not null;check:price > 0" json:"price"`
	Order       int       `gorm:"uniqueIndex:idx_menus_category_order;not null" json:"order"` // display position within the category
	Status      string    `gorm:"not null;default:'ON_SALE'" json:"status"`
	CategoryID  uint      `gorm:"uniqueIndex:idx_menus_category_order;not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Menu model
func (Menu) TableName() string {
	return "menus"
}
