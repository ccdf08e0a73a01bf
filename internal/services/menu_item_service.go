package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	minPrice = decimal.NewFromInt(2)
	// decimal(6,2) holds at most 9999.99
	maxPrice = decimal.NewFromInt(10000)
)

// MenuItemService handles business logic related to menu items.
type MenuItemService struct {
	repo         repositories.MenuItemRepository
	categoryRepo repositories.CategoryRepository
	validate     *validator.Validate
}

// NewMenuItemService creates a new MenuItemService.
func NewMenuItemService(repo repositories.MenuItemRepository, categoryRepo repositories.CategoryRepository) *MenuItemService {
	return &MenuItemService{
		repo:         repo,
		categoryRepo: categoryRepo,
		validate:     newValidator(),
	}
}

// MenuItemInput carries the writable menu item fields. Nil fields are absent from the request.
type MenuItemInput struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Inventory  *int             `json:"inventory"`
	CategoryID *uint            `json:"category_id"`
}

// GetAllMenuItems lists menu items. Anyone may browse the menu.
func (s *MenuItemService) GetAllMenuItems(ctx context.Context, filter repositories.MenuItemFilter) ([]models.MenuItem, error) {
	return s.repo.GetAll(ctx, filter)
}

// GetMenuItem retrieves a single menu item by its ID.
func (s *MenuItemService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Menu item not found.")
	}
	return item, nil
}

// CreateMenuItem creates a menu item in an existing category.
func (s *MenuItemService) CreateMenuItem(ctx context.Context, caller authz.Caller, in MenuItemInput) (*models.MenuItem, error) {
	if err := authz.Authorize(caller, authz.ActionCatalogWrite); err != nil {
		return nil, err
	}
	item := &models.MenuItem{}
	if err := s.apply(ctx, item, in, false); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	log.Printf("Menu item %q (ID: %d) created by %s", item.Title, item.ID, caller.Username)
	return s.GetMenuItem(ctx, item.ID)
}

// UpdateMenuItem replaces (partial=false) or patches (partial=true) a menu item.
func (s *MenuItemService) UpdateMenuItem(ctx context.Context, caller authz.Caller, id uint, in MenuItemInput, partial bool) (*models.MenuItem, error) {
	if err := authz.Authorize(caller, authz.ActionCatalogWrite); err != nil {
		return nil, err
	}
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, item, in, partial); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, notFoundOr(err, "Menu item not found.")
	}
	return s.GetMenuItem(ctx, id)
}

// DeleteMenuItem deletes a menu item. Cart and order lines referencing it go with it.
func (s *MenuItemService) DeleteMenuItem(ctx context.Context, caller authz.Caller, id uint) error {
	if err := authz.Authorize(caller, authz.ActionCatalogWrite); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Menu item not found.")
	}
	log.Printf("Menu item %d deleted by %s", id, caller.Username)
	return nil
}

func (s *MenuItemService) apply(ctx context.Context, item *models.MenuItem, in MenuItemInput, partial bool) error {
	fields := make(map[string]string)
	if !partial {
		for name, missing := range map[string]bool{
			"title":       in.Title == nil,
			"price":       in.Price == nil,
			"inventory":   in.Inventory == nil,
			"category_id": in.CategoryID == nil,
		} {
			if missing {
				fields[name] = "This field is required."
			}
		}
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := s.validate.Var(title, "required,max=255"); err != nil {
			fields["title"] = "Ensure this field is not blank and has no more than 255 characters."
		}
		item.Title = title
	}
	if in.Price != nil {
		if msg := checkPrice(*in.Price); msg != "" {
			fields["price"] = msg
		}
		item.Price = in.Price.Round(2)
	}
	if in.Inventory != nil {
		if err := s.validate.Var(*in.Inventory, "min=0,max=32767"); err != nil {
			fields["inventory"] = "Ensure this value is between 0 and 32767."
		}
		item.Inventory = int16(*in.Inventory)
	}
	if len(fields) > 0 {
		return apperrors.InvalidFields(fields)
	}

	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.Validation("Category does not exist and need to be created first.")
			}
			return err
		}
		item.CategoryID = *in.CategoryID
	}
	return nil
}

// checkPrice returns a validation message, or "" when price is acceptable.
func checkPrice(price decimal.Decimal) string {
	switch {
	case price.LessThan(minPrice):
		return "Ensure this value is greater than or equal to 2."
	case !price.Equal(price.Round(2)):
		return "Ensure that there are no more than 2 decimal places."
	case price.GreaterThanOrEqual(maxPrice):
		return "Ensure that there are no more than 6 digits in total."
	}
	return ""
}
