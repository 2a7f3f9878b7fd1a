package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cake_admin/constants"
	"cake_admin/helper"
	"cake_admin/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	account := model.Account{Username: "nv01", Role: role, ChatID: "chat-" + role}
	account.ID = 3
	token, err := helper.GenerateAccessToken(account)
	require.NoError(t, err)
	return token
}

func adminApp() *fiber.App {
	app := fiber.New()
	app.Delete("/bills/:id", Protected(), AdminOnly(), func(c *fiber.Ctx) error {
		claim, _ := helper.GetInfoAccountFromToken(c)
		return c.SendString(claim.ChatId)
	})
	return app
}

func TestProtectedRejectsMissingAndBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat")
	app := adminApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/bills/b1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodDelete, "/bills/b1", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer khong-phai-jwt")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat")
	app := adminApp()

	req := httptest.NewRequest(fiber.MethodDelete, "/bills/b1", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenFor(t, constants.ROLE_STAFF))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodDelete, "/bills/b1", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tokenFor(t, constants.ROLE_ADMIN)})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWebsocketUpgradeRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/chat/ws", WebsocketUpgrade(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/chat/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestWebsocketUpgradeRequiresChatID(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat")
	app := fiber.New()
	app.Get("/chat/ws", Protected(), WebsocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("chatId").(string))
	})

	upgrade := func(token string) *http.Request {
		req := httptest.NewRequest(fiber.MethodGet, "/chat/ws", nil)
		req.Header.Set(fiber.HeaderConnection, "Upgrade")
		req.Header.Set(fiber.HeaderUpgrade, "websocket")
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		return req
	}

	noChat := model.Account{Username: "nv02", Role: constants.ROLE_ADMIN}
	noChat.ID = 4
	token, err := helper.GenerateAccessToken(noChat)
	require.NoError(t, err)

	resp, err := app.Test(upgrade(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(upgrade(tokenFor(t, constants.ROLE_ADMIN)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
