package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductFilter narrows List. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID      *uint
	Search          string
	FeaturedOnly    bool
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	// FindByIDs returns the products that exist among ids, without relations.
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}
