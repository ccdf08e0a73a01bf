package middleware

import (
	"context"
	"log"
	"strings"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"

	"github.com/gofiber/fiber/v2"
)

const callerKey = "caller"

// CallerResolver turns a bearer token into the identity behind it.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (authz.Caller, error)
}

// Authenticate resolves the Authorization header into an authz.Caller stored
// in the request locals. Requests without the header continue anonymously;
// a malformed or invalid token is rejected with 401 even on public routes.
func Authenticate(resolver CallerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(callerKey, authz.Anonymous())
			return c.Next()
		}

		// Expected format: "Bearer <token>" or "Token <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") || strings.TrimSpace(parts[1]) == "" {
			return apperrors.Unauthenticated("Authorization header format must be 'Bearer <token>'")
		}

		caller, err := resolver.ResolveCaller(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return err
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// CallerFrom returns the caller stored by Authenticate, or an anonymous caller.
func CallerFrom(c *fiber.Ctx) authz.Caller {
	if caller, ok := c.Locals(callerKey).(authz.Caller); ok {
		return caller
	}
	return authz.Anonymous()
}
