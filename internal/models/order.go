package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// ValidOrderStatus reports whether s is one of the order lifecycle states.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// Address is stored as a JSON document on the order row.
type Address struct {
	Street  string `json:"street" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	ZipCode string `json:"zipCode" validate:"required,max=20"`
	Country string `json:"country" validate:"required,max=100"`
}

// Order is a placed checkout. TotalAmount is always computed server-side.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          string          `json:"userId" gorm:"type:varchar(255);not null;index"`
	OrderNumber     string          `json:"orderNumber" gorm:"type:varchar(64);not null;uniqueIndex"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:numeric(10,2);not null"`
	ShippingAddress Address         `json:"shippingAddress" gorm:"serializer:json;not null"`
	BillingAddress  *Address        `json:"billingAddress" gorm:"serializer:json"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"type:varchar(50);not null"`
	PaymentStatus   string          `json:"paymentStatus" gorm:"type:varchar(20);not null"`
	Status          string          `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Items           []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem captures the unit price at the time the order was placed.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"orderId" gorm:"not null;index"`
	ProductID uint            `json:"productId" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
	Product   *Product        `json:"product,omitempty"`
}
