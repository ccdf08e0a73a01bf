package handlers

import (
	"strconv"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/middleware"
	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	// PUT and PATCH share the same partial semantics
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Patch("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleGetOrders lists the orders visible to the caller, optionally
// filtered by ?status=.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.InvalidFields(map[string]string{"status": "A valid integer is required."})
		}
		s := models.OrderStatus(v)
		status = &s
	}

	orders, err := h.service.ListOrders(c.UserContext(), middleware.CallerFrom(c), status)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleCreateOrder converts the caller's cart into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	order, err := h.service.PlaceOrder(c.UserContext(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.UserContext(), middleware.CallerFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleUpdateOrder assigns a delivery crew member and/or sets the status.
// Body errors are reported only to callers allowed to update the order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	caller := middleware.CallerFrom(c)

	upd, err := parseOrderUpdate(c)
	if err != nil {
		if _, authErr := h.service.AuthorizeUpdate(c.UserContext(), caller, id); authErr != nil {
			return authErr
		}
		return err
	}

	order, err := h.service.UpdateOrder(c.UserContext(), caller, id, upd)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// parseOrderUpdate reads delivery_crew and status from the body. A null
// delivery_crew stays unset on the update and resolves to no user.
func parseOrderUpdate(c *fiber.Ctx) (services.OrderUpdate, error) {
	var upd services.OrderUpdate
	fields, err := bodyFields(c)
	if err != nil {
		return upd, err
	}
	if raw, ok := fields["delivery_crew"]; ok {
		upd.DeliveryCrewSet = true
		if !isNull(raw) {
			// An unusable ID resolves to no user once the caller is authorized.
			var v uint
			if crewID, ok := rawInt(raw); ok && crewID > 0 {
				v = uint(crewID)
			}
			upd.DeliveryCrewID = &v
		}
	}
	if raw, ok := fields["status"]; ok {
		v, ok := rawInt(raw)
		if !ok {
			return upd, apperrors.InvalidFields(map[string]string{"status": "A valid integer is required."})
		}
		s := models.OrderStatus(v)
		upd.Status = &s
	}
	return upd, nil
}

// HandleDeleteOrder deletes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrder(c.UserContext(), middleware.CallerFrom(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
