package repositories

import (
	"context"

	"littlelemon/internal/models"

	"github.com/shopspring/decimal"
)

// MenuItemFilter narrows and orders a menu item listing. Zero values mean "no filter".
type MenuItemFilter struct {
	Search     string
	Price      *decimal.Decimal
	Inventory  *int
	CategoryID uint
	// Ordering is one of price, inventory, title, optionally prefixed with "-".
	Ordering string
}

// MenuItemRepository defines the interface for menu item data access.
// Returned items have their category preloaded.
type MenuItemRepository interface {
	GetAll(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uint) error
}
