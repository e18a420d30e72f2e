package repositories

import (
	"context"

	"storefront/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Upsert inserts the user or refreshes the profile fields of an existing
	// row with the same ID. IsAdmin is only ever raised, never cleared.
	Upsert(ctx context.Context, user *models.User) error
}
