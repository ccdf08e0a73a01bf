package middleware

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string]authz.Caller

func (f fakeResolver) ResolveCaller(_ context.Context, token string) (authz.Caller, error) {
	if caller, ok := f[token]; ok {
		return caller, nil
	}
	return authz.Anonymous(), apperrors.Unauthenticated("Invalid or expired token")
}

func newTestApp(resolver CallerResolver, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if apperrors.Is(err, apperrors.KindUnauthenticated) {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(Authenticate(resolver))
	for _, h := range extra {
		app.Use(h)
	}
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(CallerFrom(c).UserID), 10))
	})
	return app
}

func TestAuthenticate(t *testing.T) {
	app := newTestApp(fakeResolver{"good": {UserID: 7, Username: "carol"}})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header is anonymous", "", fiber.StatusOK},
		{"bearer token", "Bearer good", fiber.StatusOK},
		{"token scheme", "Token good", fiber.StatusOK},
		{"unknown scheme", "Basic good", fiber.StatusUnauthorized},
		{"missing token", "Bearer ", fiber.StatusUnauthorized},
		{"invalid token", "Bearer bad", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestCallerFrom_DefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	var got authz.Caller
	app.Get("/", func(c *fiber.Ctx) error {
		got = CallerFrom(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestThrottle_SeparateQuotas(t *testing.T) {
	resolver := fakeResolver{"good": {UserID: 7}}
	app := newTestApp(resolver, Throttle(config.RateLimitConfig{AnonPerMinute: 1, UserPerMinute: 2}, nil)...)

	get := func(header string) int {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, get(""))
	assert.Equal(t, fiber.StatusTooManyRequests, get(""))

	// The anonymous quota does not affect authenticated callers.
	assert.Equal(t, fiber.StatusOK, get("Bearer good"))
	assert.Equal(t, fiber.StatusOK, get("Bearer good"))
	assert.Equal(t, fiber.StatusTooManyRequests, get("Bearer good"))
}
