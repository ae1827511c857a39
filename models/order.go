package models

import (
	"time"
)

// OrderStatusPending is the status every order starts in. Owners may
// overwrite it with any status string (ACCEPTED, REJECTED, COMPLETED, ...);
// no transition is forbidden and no status is terminal.
const OrderStatusPending = "PENDING"

// Order represents a client's order for a quantity of one menu
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"` // the placing client
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MenuID     uint      `gorm:"not null;index" json:"menu_id"`
	Menu       *Menu     `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	Quantity   int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalPrice int       `gorm:"not null" json:"total_price"` // menu.price * quantity, snapshotted at creation
	Status     string    `gorm:"not null;default:'PENDING'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
