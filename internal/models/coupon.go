package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
	DiscountShipping   = "shipping"
)

type Coupon struct {
	ID             uint                `json:"id" gorm:"primaryKey"`
	Code           string              `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description    string              `json:"description"`
	DiscountType   string              `json:"discountType" gorm:"type:varchar(20);not null"`
	DiscountValue  decimal.Decimal     `json:"discountValue" gorm:"type:numeric(10,2);not null"`
	MinOrderAmount decimal.NullDecimal `json:"minOrderAmount" gorm:"type:numeric(10,2)"`
	MaxUses        *int                `json:"maxUses"`
	UsedCount      int                 `json:"usedCount" gorm:"not null;default:0"`
	IsActive       bool                `json:"isActive" gorm:"not null"`
	ExpiresAt      *time.Time          `json:"expiresAt"`
	CreatedAt      time.Time           `json:"createdAt"`

	// Discount is only set on validation previews that supplied a subtotal.
	Discount *decimal.Decimal `json:"discount,omitempty" gorm:"-"`
}
