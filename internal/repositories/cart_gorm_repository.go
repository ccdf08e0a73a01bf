package repositories

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) GetByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart of user %d: %w", userID, err)
	}
	return items, nil
}

// AddQuantity creates the cart line or increases its quantity. A total above
// models.MaxCartQuantity fails with ErrCartLineLimit and leaves the line unchanged.
func (r *GORMCartRepository) AddQuantity(ctx context.Context, userID, menuItemID uint, quantity int) (*models.CartItem, error) {
	var line models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&line).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > models.MaxCartQuantity {
				return ErrCartLineLimit
			}
			line = models.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: quantity}
			return tx.Create(&line).Error
		case err != nil:
			return err
		}
		if quantity > models.MaxCartQuantity-line.Quantity {
			return ErrCartLineLimit
		}

		if err := tx.Model(&line).Update("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
			return err
		}
		return tx.First(&line, line.ID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add menu item %d to cart of user %d: %w", menuItemID, userID, err)
	}
	return &line, nil
}

func (r *GORMCartRepository) ClearByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear cart of user %d: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}
