package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) (*fiber.App, *auth.JWTManager) {
	t.Helper()
	m, err := auth.NewJWTManager("0123456789abcdef", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop()))
	app.Get("/token", func(c *fiber.Ctx) error {
		return c.SendString(ExtractToken(c))
	})
	app.Get("/private", AuthMiddleware(m, zap.NewNop()), func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(*auth.Claims)
		if !ok || !claims.Authenticated {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString("ok")
	})
	return app, m
}

func get(t *testing.T, app *fiber.App, path, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestExtractToken(t *testing.T) {
	app, _ := newApp(t)

	_, body := get(t, app, "/token", "Bearer abc")
	assert.Equal(t, "abc", body)

	_, body = get(t, app, "/token", "bearer  xyz ")
	assert.Equal(t, "xyz", body)

	_, body = get(t, app, "/token?token=fromquery", "")
	assert.Equal(t, "fromquery", body)

	_, body = get(t, app, "/token?token=fromquery", "Bearer header")
	assert.Equal(t, "header", body)
}

func TestAuthMiddleware(t *testing.T) {
	app, m := newApp(t)

	status, body := get(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, `"detail"`)

	status, _ = get(t, app, "/private", "Bearer junk")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	token, err := m.GenerateToken()
	require.NoError(t, err)

	status, body = get(t, app, "/private", "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)

	status, _ = get(t, app, "/private?token="+token, "")
	assert.Equal(t, fiber.StatusOK, status)
}
