package handlers

import (
	"log"

	"littlelemon/internal/middleware"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the account routes with the API router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users", h.HandleRegister)
	router.Get("/users/users/me", h.HandleMe)
}

// RegisterTokenRoutes registers the token endpoints.
func (h *AuthHandler) RegisterTokenRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return invalidBody(err)
	}

	if _, err := h.authService.RegisterUser(c.UserContext(), in); err != nil {
		return err
	}
	return detail(c, fiber.StatusCreated, "User created successfully.")
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return invalidBody(err)
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token})
}

// HandleMe returns the profile of the authenticated caller.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.Profile(c.UserContext(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}
