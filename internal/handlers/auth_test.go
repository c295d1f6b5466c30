package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/courtier/internal/config"
	"github.com/example/courtier/internal/middleware"
	"github.com/example/courtier/internal/utils"
)

func authTestConfig() *config.Config {
	return &config.Config{
		AppEnv:        "test",
		AdminPassword: "letmein",
		SessionSecret: "test-secret",
		SessionTTL:    24 * time.Hour,
	}
}

func authTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(cfg)
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/auth/session", h.Session)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/protected", middleware.AdminAuth(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLoginWrongPassword(t *testing.T) {
	app := authTestApp(authTestConfig())

	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", `{"password":"wrong"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app := authTestApp(authTestConfig())

	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", `{"password":"letmein"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestLoginWithBcryptHash(t *testing.T) {
	cfg := authTestConfig()
	hash, err := utils.HashPassword("hunter2")
	require.NoError(t, err)
	cfg.AdminPassword = ""
	cfg.AdminPasswordHash = hash

	app := authTestApp(cfg)

	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", `{"password":"hunter2"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/auth/login", `{"password":"wrong"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionProbe(t *testing.T) {
	cfg := authTestConfig()
	app := authTestApp(cfg)

	// No cookie.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid cookie.
	login, err := app.Test(jsonRequest("POST", "/api/auth/login", `{"password":"letmein"}`))
	require.NoError(t, err)
	cookie := sessionCookie(t, login)

	req := httptest.NewRequest("GET", "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Garbage cookie.
	req = httptest.NewRequest("GET", "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "not-a-token"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware(t *testing.T) {
	cfg := authTestConfig()
	app := authTestApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	login, err := app.Test(jsonRequest("POST", "/api/auth/login", `{"password":"letmein"}`))
	require.NoError(t, err)
	cookie := sessionCookie(t, login)

	req := httptest.NewRequest("GET", "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogoutExpiresCookie(t *testing.T) {
	app := authTestApp(authTestConfig())

	resp, err := app.Test(jsonRequest("POST", "/api/auth/logout", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
