package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// CartRepository defines the interface for per-user cart data access.
type CartRepository interface {
	GetByUser(ctx context.Context, userID uint) ([]models.CartItem, error)
	// AddQuantity increments the (user, menu item) line by quantity, creating it when absent.
	AddQuantity(ctx context.Context, userID, menuItemID uint, quantity int) (*models.CartItem, error)
	ClearByUser(ctx context.Context, userID uint) (int64, error)
}
