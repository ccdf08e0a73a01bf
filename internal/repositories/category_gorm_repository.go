package repositories

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(&models.Category{ID: category.ID}).
		Select("slug", "title").
		Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a category unless a menu item still references it.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.MenuItem{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count menu items of category %d: %w", id, err)
		}
		if refs > 0 {
			return fmt.Errorf("category with ID %d: %w", id, ErrCategoryInUse)
		}

		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
