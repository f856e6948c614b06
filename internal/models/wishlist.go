package models

import "time"

// WishlistItem is a product saved by a user for later.
type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserUID   string    `json:"user_uid" gorm:"type:varchar(64);not null;index;uniqueIndex:idx_wishlist_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}
