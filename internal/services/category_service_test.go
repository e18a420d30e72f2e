package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/apperrors"
)

func TestCategoryService_CreateSlug(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Category) bool {
		return c.Slug == "home-garden"
	})).Return(nil).Twice()

	category, err := service.Create(ctx, models.Category{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-garden", category.Slug)

	category, err = service.Create(ctx, models.Category{Name: "Outdoors", Slug: "Home & Garden!"})
	require.NoError(t, err)
	assert.Equal(t, "home-garden", category.Slug)

	_, err = service.Create(ctx, models.Category{Name: "Outdoors", Slug: "&&"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	mockRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateNormalizesSlug(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, uint(3)).Return(&models.Category{ID: 3, Name: "Books", Slug: "books"}, nil).Twice()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(c *models.Category) bool {
		return c.Slug == "rare-books"
	})).Return(nil).Once()

	slug := "Rare Books"
	category, err := service.Update(ctx, 3, services.UpdateCategoryInput{Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "rare-books", category.Slug)

	blank := " / "
	_, err = service.Update(ctx, 3, services.UpdateCategoryInput{Slug: &blank})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	mockRepo.AssertExpectations(t)
}
