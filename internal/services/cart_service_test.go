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

func TestCartService_AddDefaultsQuantity(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	service := services.NewCartService(carts, products)
	ctx := context.Background()

	products.On("GetByID", ctx, uint(3)).Return(&models.Product{ID: 3}, nil).Once()
	carts.On("Add", ctx, mock.MatchedBy(func(item *models.CartItem) bool {
		return item.UserID == "user-1" && item.ProductID == 3 && item.Quantity == 1
	})).Return(nil).Once()

	_, err := service.Add(ctx, "user-1", services.AddToCartInput{ProductID: 3})
	require.NoError(t, err)
	carts.AssertExpectations(t)
}

func TestCartService_AddMissingProduct(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	service := services.NewCartService(carts, products)
	ctx := context.Background()

	products.On("GetByID", ctx, uint(9)).Return(nil, apperrors.New(apperrors.CodeNotFound, "Product not found")).Once()

	_, err := service.Add(ctx, "user-1", services.AddToCartInput{ProductID: 9, Quantity: 2})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	carts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCartService_UpdateQuantityRejectsZero(t *testing.T) {
	service := services.NewCartService(new(MockCartRepository), new(MockProductRepository))

	_, err := service.UpdateQuantity(context.Background(), "user-1", 1, 0)
	require.Error(t, err)
	assert.Equal(t, "Invalid quantity", apperrors.As(err).Message())
}

func TestCartService_Summary(t *testing.T) {
	carts := new(MockCartRepository)
	service := services.NewCartService(carts, new(MockProductRepository))
	ctx := context.Background()

	carts.On("ListByUser", ctx, "user-1").Return([]models.CartItem{
		{ID: 1, Quantity: 2, Product: &models.Product{Price: d("10.00")}},
		{ID: 2, Quantity: 1, Product: &models.Product{Price: d("5.00")}},
	}, nil).Once()

	summary, err := service.Summary(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, "25.00", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "36.99", summary.Total.StringFixed(2))
}
