package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

type AddToWishlistInput struct {
	ProductID uint `json:"productId" validate:"required"`
}

type WishlistService struct {
	wishlist repositories.WishlistRepository
	products repositories.ProductRepository
}

func NewWishlistService(wishlist repositories.WishlistRepository, products repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	return s.wishlist.ListByUser(ctx, userID)
}

func (s *WishlistService) Add(ctx context.Context, userID string, in AddToWishlistInput) (*models.WishlistItem, error) {
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	item := &models.WishlistItem{UserID: userID, ProductID: in.ProductID}
	if err := s.wishlist.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID string, id uint) error {
	return s.wishlist.Remove(ctx, userID, id)
}
