package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	// Add is idempotent: adding a product twice returns the existing entry.
	Add(ctx context.Context, item *models.WishlistItem) error
	Remove(ctx context.Context, userID string, id uint) error
}

type GORMWishlistRepository struct {
	db *gorm.DB
}

func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{db: db}
}

func (r *GORMWishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist for user %s: %w", userID, err)
	}
	return items, nil
}

func (r *GORMWishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	db := r.db.WithContext(ctx)
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to wishlist: %w", item.ProductID, err)
	}

	var stored models.WishlistItem
	err = db.Preload("Product").
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		First(&stored).Error
	if err != nil {
		return fmt.Errorf("failed to reload wishlist item: %w", err)
	}
	*item = stored
	return nil
}

func (r *GORMWishlistRepository) Remove(ctx context.Context, userID string, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.WishlistItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove wishlist item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Wishlist item not found", "")
	}
	return nil
}
