package middleware

import (
	"bytes"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senya/backend/config"
	"senya/backend/models"
	"senya/backend/utils"
)

func setupApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", AuthMiddleware(cfg))
	api.Get("/me", func(c *fiber.Ctx) error {
		p, _ := PrincipalFrom(c)
		return c.JSON(fiber.Map{"user_id": p.UserID})
	})
	api.Get("/admin", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test", JWTTTLHours: 1}
	app := setupApp(cfg)

	req := httptest.NewRequest("GET", "/api/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := utils.GenerateJWTToken(3, models.RoleUser, cfg)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	other := &config.Config{JWTSecret: "other", JWTTTLHours: 1}
	forged, err := utils.GenerateJWTToken(3, models.RoleAdmin, other)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test", JWTTTLHours: 1}
	app := setupApp(cfg)

	for _, tc := range []struct {
		role models.Role
		want int
	}{
		{models.RoleUser, fiber.StatusForbidden},
		{models.RoleAdmin, fiber.StatusNoContent},
	} {
		token, err := utils.GenerateJWTToken(1, tc.role, cfg)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/api/admin", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, string(tc.role))
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggingMiddleware(log.New(&buf, "", 0), false))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "GET /ping 200")
}
