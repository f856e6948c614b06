package models

import "time"

// Order statuses move forward only.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a checkout snapshot of a cart. Line items carry the price at
// purchase time so later product edits don't rewrite history.
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Number     string      `json:"number" gorm:"type:varchar(36);uniqueIndex;not null"`
	BuyerUID   string      `json:"buyer_uid" gorm:"type:varchar(64);not null;index"`
	Status     string      `json:"status" gorm:"not null;default:placed"`
	TotalCents int64       `json:"total_cents" gorm:"not null"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderID     uint   `json:"order_id" gorm:"not null;index"`
	ProductID   uint   `json:"product_id" gorm:"not null"`
	DesignerUID string `json:"designer_uid" gorm:"type:varchar(64);not null;index"`
	Name        string `json:"name" gorm:"not null"`
	PriceCents  int64  `json:"price_cents" gorm:"not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`
}
