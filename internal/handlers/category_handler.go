package handlers

import (
	"littlelemon/internal/authz"
	"littlelemon/internal/middleware"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for menu categories.
type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes. throttle runs before every route.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, throttle ...fiber.Handler) {
	routes := router.Group("/categories", throttle...)
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Get("/:id", h.HandleGet)
	routes.Put("/:id", h.HandleUpdate(false))
	routes.Patch("/:id", h.HandleUpdate(true))
	routes.Delete("/:id", h.HandleDelete)
}

func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	caller, err := authorizedCaller(c, authz.ActionCatalogWrite)
	if err != nil {
		return err
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	category, err := h.service.CreateCategory(c.UserContext(), caller, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate serves PUT (partial=false) and PATCH (partial=true).
func (h *CategoryHandler) HandleUpdate(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		caller, err := authorizedCaller(c, authz.ActionCatalogWrite)
		if err != nil {
			return err
		}
		var in services.CategoryInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(err)
		}
		category, err := h.service.UpdateCategory(c.UserContext(), caller, id, in, partial)
		if err != nil {
			return err
		}
		return c.JSON(category)
	}
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.UserContext(), middleware.CallerFrom(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
