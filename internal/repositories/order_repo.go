package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// Place writes the order header and its items and empties the owner's
	// cart. Either all three happen or none do.
	Place(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error)
}
