package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/apperrors"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"omitempty,max=255"`
	Comment string `json:"comment" validate:"omitempty,max=5000"`
}

type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
}

func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

func (s *ReviewService) List(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *ReviewService) Create(ctx context.Context, userID string, productID uint, in ReviewInput) (*models.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review written by user, or any review when user is an admin.
func (s *ReviewService) Delete(ctx context.Context, user *models.User, id uint) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != user.ID && !user.IsAdmin {
		return apperrors.New(apperrors.CodeForbidden, "Access denied")
	}
	return s.reviews.Delete(ctx, id)
}
