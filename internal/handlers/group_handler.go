package handlers

import (
	"littlelemon/internal/authz"
	"littlelemon/internal/middleware"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles HTTP requests for staff group membership.
type GroupHandler struct {
	service *services.GroupService
}

func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type memberResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRoutes registers one set of membership routes per staff role.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	for path, role := range map[string]authz.Role{
		"/groups/manager/users":       authz.RoleManager,
		"/groups/delivery-crew/users": authz.RoleDeliveryCrew,
	} {
		routes := router.Group(path)
		routes.Get("/", h.HandleList(role))
		routes.Post("/", h.HandleAdd(role))
		routes.Delete("/", h.HandleRemove(role))
		routes.Delete("/:userId", h.HandleRemove(role))
	}
}

func (h *GroupHandler) HandleList(role authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := h.service.ListMembers(c.UserContext(), middleware.CallerFrom(c), role)
		if err != nil {
			return err
		}
		out := make([]memberResponse, 0, len(users))
		for _, u := range users {
			out = append(out, memberResponse{ID: u.ID, Username: u.Username, Email: u.Email})
		}
		return c.JSON(out)
	}
}

func (h *GroupHandler) HandleAdd(role authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := authorizedCaller(c, authz.ActionGroupManage)
		if err != nil {
			return err
		}
		var req struct {
			Username string `json:"username" form:"username"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return invalidBody(err)
			}
		}
		msg, err := h.service.AddMember(c.UserContext(), caller, role, req.Username)
		if err != nil {
			return err
		}
		return detail(c, fiber.StatusOK, msg)
	}
}

// HandleRemove serves DELETE with and without a user ID so that a missing
// ID is reported as a validation error rather than a routing 404.
func (h *GroupHandler) HandleRemove(role authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID uint
		if c.Params("userId") != "" {
			id, err := paramID(c, "userId")
			if err != nil {
				return err
			}
			userID = id
		}
		msg, err := h.service.RemoveMember(c.UserContext(), middleware.CallerFrom(c), role, userID)
		if err != nil {
			return err
		}
		return detail(c, fiber.StatusOK, msg)
	}
}
