package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// UserRepository defines the interface for user data access.
// Users returned by the Get* methods have their groups preloaded.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}
