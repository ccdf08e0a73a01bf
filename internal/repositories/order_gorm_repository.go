package repositories

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) GetAll(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.DeliveryCrewID != nil {
		q = q.Where("delivery_crew_id = ?", *filter.DeliveryCrewID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var orders []models.Order
	if err := q.Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	return getOrder(r.db.WithContext(ctx), id)
}

// CreateFromCart turns the user's cart into an order in one transaction. The
// cart lines are locked while they are copied, and the conversion is rolled
// back with ErrCartEmpty when another conversion removed them first.
func (r *GORMOrderRepository) CreateFromCart(ctx context.Context, userID uint) (*models.Order, error) {
	var order *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID).Order("id")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var cart []models.CartItem
		if err := q.Find(&cart).Error; err != nil {
			return fmt.Errorf("failed to read cart of user %d: %w", userID, err)
		}
		if len(cart) == 0 {
			return ErrCartEmpty
		}

		placed := models.Order{UserID: userID, Status: models.OrderStatusOutForDelivery}
		if err := tx.Omit("Items").Create(&placed).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(cart))
		for _, line := range cart {
			items = append(items, models.OrderItem{
				OrderID:    &placed.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		// Delete exactly the lines that were copied, so a line added concurrently
		// is left for the next order instead of being lost.
		ids := make([]uint, 0, len(cart))
		for _, line := range cart {
			ids = append(ids, line.ID)
		}
		res := tx.Delete(&models.CartItem{}, ids)
		if res.Error != nil {
			return fmt.Errorf("failed to clear cart of user %d: %w", userID, res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return ErrCartEmpty
		}

		var err error
		order, err = getOrder(tx, placed.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GORMOrderRepository) UpdateAssignment(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Model(&models.Order{ID: order.ID}).Updates(map[string]interface{}{
		"delivery_crew_id": order.DeliveryCrewID,
		"status":           order.Status,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", order.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an order and its items.
func (r *GORMOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of order %d: %w", id, err)
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func getOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}
