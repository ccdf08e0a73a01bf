package handlers

import (
	"strconv"
	"strings"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/middleware"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// MenuItemHandler handles HTTP requests for menu items.
type MenuItemHandler struct {
	service *services.MenuItemService
}

func NewMenuItemHandler(service *services.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{service: service}
}

type categorySummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type menuItemResponse struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Price     string          `json:"price"`
	Inventory int16           `json:"inventory"`
	Category  categorySummary `json:"category"`
}

func toMenuItemResponse(item *models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Price:     item.Price.StringFixed(2),
		Inventory: item.Inventory,
		Category:  categorySummary{ID: item.Category.ID, Title: item.Category.Title},
	}
}

// RegisterRoutes registers the menu item routes. throttle runs before every route.
func (h *MenuItemHandler) RegisterRoutes(router fiber.Router, throttle ...fiber.Handler) {
	routes := router.Group("/menu-items", throttle...)
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Get("/:id", h.HandleGet)
	routes.Put("/:id", h.HandleUpdate(false))
	routes.Patch("/:id", h.HandleUpdate(true))
	routes.Delete("/:id", h.HandleDelete)
}

// HandleList lists menu items. Supported query parameters: search, price,
// inventory, category and ordering.
func (h *MenuItemHandler) HandleList(c *fiber.Ctx) error {
	filter, err := menuItemFilter(c)
	if err != nil {
		return err
	}
	items, err := h.service.GetAllMenuItems(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]menuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toMenuItemResponse(&items[i]))
	}
	return c.JSON(out)
}

func menuItemFilter(c *fiber.Ctx) (repositories.MenuItemFilter, error) {
	filter := repositories.MenuItemFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: c.Query("ordering"),
	}
	fields := make(map[string]string)
	if raw := c.Query("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			fields["price"] = "Enter a number."
		} else {
			filter.Price = &price
		}
	}
	if raw := c.Query("inventory"); raw != "" {
		inventory, err := strconv.Atoi(raw)
		if err != nil {
			fields["inventory"] = "Enter a whole number."
		} else {
			filter.Inventory = &inventory
		}
	}
	if raw := c.Query("category"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fields["category"] = "Enter a whole number."
		} else {
			filter.CategoryID = uint(categoryID)
		}
	}
	if len(fields) > 0 {
		return filter, apperrors.InvalidFields(fields)
	}
	return filter, nil
}

func (h *MenuItemHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.GetMenuItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(toMenuItemResponse(item))
}

func (h *MenuItemHandler) HandleCreate(c *fiber.Ctx) error {
	caller, err := authorizedCaller(c, authz.ActionCatalogWrite)
	if err != nil {
		return err
	}
	var in services.MenuItemInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	item, err := h.service.CreateMenuItem(c.UserContext(), caller, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toMenuItemResponse(item))
}

// HandleUpdate serves PUT (partial=false) and PATCH (partial=true).
func (h *MenuItemHandler) HandleUpdate(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		caller, err := authorizedCaller(c, authz.ActionCatalogWrite)
		if err != nil {
			return err
		}
		var in services.MenuItemInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(err)
		}
		item, err := h.service.UpdateMenuItem(c.UserContext(), caller, id, in, partial)
		if err != nil {
			return err
		}
		return c.JSON(toMenuItemResponse(item))
	}
}

func (h *MenuItemHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteMenuItem(c.UserContext(), middleware.CallerFrom(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
