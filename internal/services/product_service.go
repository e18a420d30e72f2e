package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CreateProductInput is the admin payload for a new product. IsActive
// defaults to true when omitted.
type CreateProductInput struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Slug          string           `json:"slug" validate:"omitempty,max=255"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" validate:"gt=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" validate:"omitempty,gt=0"`
	SKU           string           `json:"sku" validate:"required,max=100"`
	CategoryID    *uint            `json:"categoryId"`
	Stock         int              `json:"stock" validate:"gte=0"`
	Images        []string         `json:"images" validate:"omitempty,dive,max=1024"`
	IsActive      *bool            `json:"isActive"`
	IsFeatured    bool             `json:"isFeatured"`
	Tags          []string         `json:"tags" validate:"omitempty,dive,max=64"`
}

// UpdateProductInput carries a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Slug          *string          `json:"slug" validate:"omitempty,min=1,max=255"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" validate:"omitempty,gt=0"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	CategoryID    *uint            `json:"categoryId"`
	Stock         *int             `json:"stock" validate:"omitempty,gte=0"`
	Images        []string         `json:"images" validate:"omitempty,dive,max=1024"`
	IsActive      *bool            `json:"isActive"`
	IsFeatured    *bool            `json:"isFeatured"`
	Tags          []string         `json:"tags" validate:"omitempty,dive,max=64"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// List retrieves active products matching filter with their ratings filled in.
func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].ApplyRatings()
	}
	return products, nil
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ApplyRatings()
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	product.ApplyRatings()
	return product, nil
}

// Create creates a new product.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		SKU:         in.SKU,
		CategoryID:  in.CategoryID,
		Stock:       in.Stock,
		Images:      nonNil(in.Images),
		IsActive:    true,
		IsFeatured:  in.IsFeatured,
		Tags:        nonNil(in.Tags),
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice)
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.Slug = slugFor(in.Slug, product.Name)
	if product.Slug == "" {
		return nil, invalidSlug("Invalid product data")
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies a partial update to an existing product.
func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Slug != nil {
		if product.Slug = Slugify(*in.Slug); product.Slug == "" {
			return nil, invalidSlug("Invalid product data")
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice)
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
		product.Category = nil
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete deletes a product by its ID.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
