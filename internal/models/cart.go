package models

import "time"

// CartItem is one product line in a user's cart. There is at most one row per
// (UserID, ProductID).
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(255);not null;uniqueIndex:idx_carts_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_carts_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	Product   *Product  `json:"product,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (CartItem) TableName() string { return "carts" }

type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(255);not null;uniqueIndex:idx_wishlists_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_wishlists_user_product"`
	CreatedAt time.Time `json:"createdAt"`
	Product   *Product  `json:"product,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (WishlistItem) TableName() string { return "wishlists" }
