package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/apperrors"
)

type AddToCartInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"omitempty,min=1"`
}

type CartSummary struct {
	Items []models.CartItem `json:"items"`
	Totals
}

type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.carts.ListByUser(ctx, userID)
}

// Add puts a product in the cart, merging with an existing line for the same
// product.
func (s *CartService) Add(ctx context.Context, userID string, in AddToCartInput) (*models.CartItem, error) {
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	item := &models.CartItem{UserID: userID, ProductID: in.ProductID, Quantity: quantity}
	if err := s.carts.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, id uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.Invalid("Invalid quantity")
	}
	return s.carts.UpdateQuantity(ctx, userID, id, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID string, id uint) error {
	return s.carts.Remove(ctx, userID, id)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// Summary prices the cart at current product prices.
func (s *CartService) Summary(ctx context.Context, userID string) (*CartSummary, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		lines = append(lines, Line{UnitPrice: item.Product.Price, Quantity: item.Quantity})
	}
	return &CartSummary{Items: items, Totals: CalculateTotals(lines)}, nil
}
