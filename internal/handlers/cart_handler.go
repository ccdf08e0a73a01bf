package handlers

import (
	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/middleware"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/cart/menu-items")
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleAdd)
	routes.Delete("/", h.HandleClear)
}

func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	lines, err := h.service.ListCart(c.UserContext(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(lines)
}

// HandleAdd adds a menu item to the cart. quantity defaults to 1.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	caller, err := authorizedCaller(c, authz.ActionCartAccess)
	if err != nil {
		return err
	}
	fields, err := bodyFields(c)
	if err != nil {
		return err
	}

	var menuItemID, quantity int64 = 0, 1
	if raw, ok := fields["menu_item_id"]; ok && !isNull(raw) {
		if menuItemID, ok = rawInt(raw); !ok || menuItemID < 0 {
			return apperrors.InvalidFields(map[string]string{"menu_item_id": "A valid integer is required."})
		}
	}
	if raw, ok := fields["quantity"]; ok {
		if quantity, ok = rawInt(raw); !ok {
			return apperrors.InvalidFields(map[string]string{"quantity": "A valid integer is required."})
		}
	}

	line, err := h.service.AddToCart(c.UserContext(), caller, uint(menuItemID), int(quantity))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.UserContext(), middleware.CallerFrom(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
