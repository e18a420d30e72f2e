package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Inactive products stay in the table but are
// hidden from customer listings.
type Product struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Name          string              `json:"name" gorm:"type:varchar(255);not null"`
	Slug          string              `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price" gorm:"type:numeric(10,2);not null"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice" gorm:"type:numeric(10,2)"`
	SKU           string              `json:"sku" gorm:"column:sku;type:varchar(100);uniqueIndex;not null"`
	CategoryID    *uint               `json:"categoryId" gorm:"index"`
	Category      *Category           `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Stock         int                 `json:"stock" gorm:"not null;default:0"`
	Images        []string            `json:"images" gorm:"serializer:json"`
	IsActive      bool                `json:"isActive" gorm:"not null"`
	IsFeatured    bool                `json:"isFeatured" gorm:"not null"`
	Tags          []string            `json:"tags" gorm:"serializer:json"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	Reviews       []Review `json:"reviews,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	AverageRating float64  `json:"averageRating" gorm:"-"`
	ReviewCount   int      `json:"reviewCount" gorm:"-"`
}

// ApplyRatings fills AverageRating and ReviewCount from the loaded Reviews.
func (p *Product) ApplyRatings() {
	p.ReviewCount = len(p.Reviews)
	if p.ReviewCount == 0 {
		p.AverageRating = 0
		return
	}
	total := 0
	for _, r := range p.Reviews {
		total += r.Rating
	}
	avg := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(p.ReviewCount))).Round(1)
	p.AverageRating = avg.InexactFloat64()
}
