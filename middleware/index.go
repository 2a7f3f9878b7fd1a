package middleware

import (
	"cake_admin/constants"
	"cake_admin/helper"
	"cake_admin/utils"
	"errors"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func tokenFromRequest(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		// check header Authorization: Bearer xxx
		auth := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, isAdmin := helper.GetInfoAccountFromToken(c); !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ONLY_ADMIN, nil)
		}
		return c.Next()
	}
}

// WebsocketUpgrade chỉ cho qua request nâng cấp websocket, lưu chatId của admin vào Locals
func WebsocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claim, _ := helper.GetInfoAccountFromToken(c)
		if claim.ChatId == "" {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được cấp chatId", nil)
		}
		c.Locals("chatId", claim.ChatId)
		return c.Next()
	}
}
