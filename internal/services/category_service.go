package services

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// UpdateCategoryInput carries a partial update; nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

type CategoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// Create stores a category, deriving the slug from the name when it is blank.
func (s *CategoryService) Create(ctx context.Context, in models.Category) (*models.Category, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Image:       in.Image,
	}
	category.Slug = slugFor(in.Slug, category.Name)
	if category.Slug == "" {
		return nil, invalidSlug("Invalid category data")
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if in.Slug != nil {
		if category.Slug = Slugify(*in.Slug); category.Slug == "" {
			return nil, invalidSlug("Invalid category data")
		}
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Image != nil {
		category.Image = *in.Image
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
