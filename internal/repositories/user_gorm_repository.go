package repositories

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/models"

	"gorm.io/gorm"
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

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("Groups").Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, fmt.Sprintf("username %s", username), "username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, fmt.Sprintf("email %s", email), "email = ?", email)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, fmt.Sprintf("ID %d", id), "id = ?", id)
}

func (r *GORMUserRepository) first(ctx context.Context, desc string, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with %s: %w", desc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", desc, err)
	}
	return &user, nil
}
