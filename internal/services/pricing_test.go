package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/services"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []services.Line
		subtotal string
		shipping string
		tax      string
		total    string
	}{
		{
			name:     "below threshold pays shipping",
			lines:    []services.Line{{UnitPrice: d("10.00"), Quantity: 2}, {UnitPrice: d("5.00"), Quantity: 1}},
			subtotal: "25.00", shipping: "9.99", tax: "2.00", total: "36.99",
		},
		{
			name:     "above threshold ships free",
			lines:    []services.Line{{UnitPrice: d("30.00"), Quantity: 2}},
			subtotal: "60.00", shipping: "0.00", tax: "4.80", total: "64.80",
		},
		{
			name:     "exactly threshold pays shipping",
			lines:    []services.Line{{UnitPrice: d("50.00"), Quantity: 1}},
			subtotal: "50.00", shipping: "9.99", tax: "4.00", total: "63.99",
		},
		{
			name:     "tax rounds to cents",
			lines:    []services.Line{{UnitPrice: d("19.99"), Quantity: 1}},
			subtotal: "19.99", shipping: "9.99", tax: "1.60", total: "31.58",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.CalculateTotals(tt.lines)
			assert.Equal(t, tt.subtotal, got.Subtotal.StringFixed(2))
			assert.Equal(t, tt.shipping, got.Shipping.StringFixed(2))
			assert.Equal(t, tt.tax, got.Tax.StringFixed(2))
			assert.Equal(t, tt.total, got.Total.StringFixed(2))
		})
	}
}

func TestCouponDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   models.Coupon
		subtotal string
		want     string
	}{
		{"percentage", models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: d("10")}, "45.50", "4.55"},
		{"fixed", models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: d("20")}, "100.00", "20.00"},
		{"fixed capped at subtotal", models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: d("20")}, "12.00", "12.00"},
		{"shipping below threshold", models.Coupon{DiscountType: models.DiscountShipping}, "30.00", "9.99"},
		{"shipping already free", models.Coupon{DiscountType: models.DiscountShipping}, "80.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.CouponDiscount(&tt.coupon, d(tt.subtotal))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
