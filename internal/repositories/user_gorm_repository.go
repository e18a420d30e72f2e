package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetByID retrieves a user by their subject ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if appErr := classify(err, "User not found", ""); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// Upsert writes the user and reloads the stored row into user.
func (r *GORMUserRepository) Upsert(ctx context.Context, user *models.User) error {
	columns := []string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}
	if user.IsAdmin {
		columns = append(columns, "is_admin")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(user).Error
	if err != nil {
		if appErr := classify(err, "", "Email is already linked to another account"); appErr != nil {
			return appErr
		}
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}

	if err := r.db.WithContext(ctx).First(user, "id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("failed to reload user %s: %w", user.ID, err)
	}
	return nil
}
