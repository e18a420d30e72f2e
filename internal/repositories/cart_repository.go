package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	// Add inserts the line or increments the existing line's quantity in a
	// single statement.
	Add(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, userID string, id uint, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID string, id uint) error
	Clear(ctx context.Context, userID string) error
}

type GORMCartRepository struct {
	db *gorm.DB
}

func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart for user %s: %w", userID, err)
	}
	return items, nil
}

func (r *GORMCartRepository) Add(ctx context.Context, item *models.CartItem) error {
	db := r.db.WithContext(ctx)
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Set{{
			Column: clause.Column{Name: "quantity"},
			Value:  gorm.Expr("carts.quantity + excluded.quantity"),
		}},
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to cart: %w", item.ProductID, err)
	}

	// The conflict branch does not reliably report the existing row id.
	var stored models.CartItem
	err = db.Preload("Product").
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		First(&stored).Error
	if err != nil {
		return fmt.Errorf("failed to reload cart item: %w", err)
	}
	*item = stored
	return nil
}

func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, userID string, id uint, quantity int) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, classify(gorm.ErrRecordNotFound, "Cart item not found", "")
	}

	var item models.CartItem
	if err := db.Preload("Product").First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart item %d: %w", id, err)
	}
	return &item, nil
}

func (r *GORMCartRepository) Remove(ctx context.Context, userID string, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Cart item not found", "")
	}
	return nil
}

func (r *GORMCartRepository) Clear(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
