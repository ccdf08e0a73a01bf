package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// OrderFilter restricts an order listing. Nil fields are not applied.
type OrderFilter struct {
	UserID         *uint
	DeliveryCrewID *uint
	Status         *models.OrderStatus
}

// OrderRepository defines the interface for order data access.
// Returned orders have their items preloaded.
type OrderRepository interface {
	GetAll(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// CreateFromCart turns the user's cart into an order and empties the cart
	// in a single transaction. It returns ErrCartEmpty when there is nothing to order.
	CreateFromCart(ctx context.Context, userID uint) (*models.Order, error)
	// UpdateAssignment stores the order's delivery crew and status.
	UpdateAssignment(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uint) error
}
