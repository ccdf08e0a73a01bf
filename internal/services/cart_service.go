package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CartService manages the caller's own cart.
type CartService struct {
	cartRepo     repositories.CartRepository
	menuItemRepo repositories.MenuItemRepository
	validate     *validator.Validate
}

func NewCartService(cartRepo repositories.CartRepository, menuItemRepo repositories.MenuItemRepository) *CartService {
	return &CartService{cartRepo: cartRepo, menuItemRepo: menuItemRepo, validate: newValidator()}
}

var quantityTooLarge = fmt.Sprintf("Ensure this value is less than or equal to %d.", models.MaxCartQuantity)

// ListCart returns the caller's cart lines.
func (s *CartService) ListCart(ctx context.Context, caller authz.Caller) ([]models.CartItem, error) {
	if err := authz.Authorize(caller, authz.ActionCartAccess); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUser(ctx, caller.UserID)
}

// AddToCart adds quantity of a menu item to the caller's cart. Adding an item
// that is already in the cart increases the quantity of the existing line.
func (s *CartService) AddToCart(ctx context.Context, caller authz.Caller, menuItemID uint, quantity int) (*models.CartItem, error) {
	if err := authz.Authorize(caller, authz.ActionCartAccess); err != nil {
		return nil, err
	}
	if menuItemID == 0 || quantity == 0 {
		return nil, apperrors.Validation("Menu item id and quantity required.")
	}
	if err := s.validate.Var(quantity, "min=1"); err != nil {
		return nil, apperrors.InvalidFields(map[string]string{
			"quantity": "Ensure this value is greater than or equal to 1.",
		})
	}
	if err := s.validate.Var(quantity, fmt.Sprintf("max=%d", models.MaxCartQuantity)); err != nil {
		return nil, apperrors.InvalidFields(map[string]string{"quantity": quantityTooLarge})
	}
	if _, err := s.menuItemRepo.GetByID(ctx, menuItemID); err != nil {
		return nil, notFoundOr(err, "Menu item does not exist.")
	}

	line, err := s.cartRepo.AddQuantity(ctx, caller.UserID, menuItemID, quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrCartLineLimit) {
			return nil, apperrors.InvalidFields(map[string]string{"quantity": quantityTooLarge})
		}
		return nil, err
	}
	return line, nil
}

// ClearCart deletes every line of the caller's cart.
func (s *CartService) ClearCart(ctx context.Context, caller authz.Caller) error {
	if err := authz.Authorize(caller, authz.ActionCartAccess); err != nil {
		return err
	}
	n, err := s.cartRepo.ClearByUser(ctx, caller.UserID)
	if err != nil {
		return err
	}
	log.Printf("Cleared %d cart lines of user %d", n, caller.UserID)
	return nil
}
