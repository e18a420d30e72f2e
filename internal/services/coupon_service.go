package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/apperrors"
)

type CouponInput struct {
	Code           string           `json:"code" validate:"required,max=50"`
	Description    string           `json:"description" validate:"omitempty,max=500"`
	DiscountType   string           `json:"discountType" validate:"required,oneof=percentage fixed shipping"`
	DiscountValue  decimal.Decimal  `json:"discountValue" validate:"gte=0"`
	MinOrderAmount *decimal.Decimal `json:"minOrderAmount" validate:"omitempty,gte=0"`
	MaxUses        *int             `json:"maxUses" validate:"omitempty,min=1"`
	IsActive       *bool            `json:"isActive"`
	ExpiresAt      *time.Time       `json:"expiresAt"`
}

// CouponService validates coupon codes. Validation is a preview: it never
// consumes a use.
type CouponService struct {
	repo repositories.CouponRepository
	now  func() time.Time
}

func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{repo: repo, now: time.Now}
}

// Validate looks up an active coupon by code and checks expiry and usage. When
// subtotal is given the minimum order amount is enforced and the discount for
// that subtotal is reported on the returned coupon.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal *decimal.Decimal) (*models.Coupon, error) {
	coupon, err := s.repo.GetActiveByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(s.now()) {
		return nil, apperrors.Invalid("Coupon has expired")
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, apperrors.Invalid("Coupon usage limit reached")
	}
	if subtotal == nil {
		return coupon, nil
	}

	if coupon.MinOrderAmount.Valid && subtotal.LessThan(coupon.MinOrderAmount.Decimal) {
		return nil, apperrors.Invalid("Order does not meet the coupon minimum", apperrors.FieldError{
			Field:   "subtotal",
			Tag:     "min",
			Message: "minimum order amount is " + coupon.MinOrderAmount.Decimal.StringFixed(2),
		})
	}
	discount := CouponDiscount(coupon, *subtotal)
	coupon.Discount = &discount
	return coupon, nil
}

func (s *CouponService) Create(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	if in.DiscountType == models.DiscountPercentage && in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperrors.Invalid("Invalid coupon data", apperrors.FieldError{
			Field: "discountValue", Tag: "max", Message: "percentage discount cannot exceed 100",
		})
	}

	coupon := &models.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(in.Code)),
		Description:   in.Description,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		MaxUses:       in.MaxUses,
		IsActive:      true,
		ExpiresAt:     in.ExpiresAt,
	}
	if in.MinOrderAmount != nil {
		coupon.MinOrderAmount = decimal.NewNullDecimal(*in.MinOrderAmount)
	}
	if in.IsActive != nil {
		coupon.IsActive = *in.IsActive
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}
