package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"littlelemon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Unknown orderings are ignored.
var menuItemOrderings = map[string]string{
	"price":      "price",
	"-price":     "price DESC",
	"inventory":  "inventory",
	"-inventory": "inventory DESC",
	"title":      "title",
	"-title":     "title DESC",
}

// GORMMenuItemRepository is a GORM implementation of MenuItemRepository.
type GORMMenuItemRepository struct {
	db *gorm.DB
}

func NewGORMMenuItemRepository(db *gorm.DB) *GORMMenuItemRepository {
	return &GORMMenuItemRepository{db: db}
}

func (r *GORMMenuItemRepository) GetAll(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).Preload("Category")
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Price != nil {
		q = q.Where("price = ?", *filter.Price)
	}
	if filter.Inventory != nil {
		q = q.Where("inventory = ?", *filter.Inventory)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if order, ok := menuItemOrderings[filter.Ordering]; ok {
		q = q.Order(order)
	}
	q = q.Order("id")

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, nil
}

func (r *GORMMenuItemRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu item with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu item by ID %d: %w", id, err)
	}
	return &item, nil
}

func (r *GORMMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *GORMMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&models.MenuItem{ID: item.ID}).
		Omit(clause.Associations).
		Select("title", "price", "inventory", "category_id").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("menu item with ID %d: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a menu item together with the cart and order lines pointing at it.
func (r *GORMMenuItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart lines of menu item %d: %w", id, err)
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order lines of menu item %d: %w", id, err)
		}
		res := tx.Delete(&models.MenuItem{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete menu item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("menu item with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
