package handler

import (
	"cake_admin/constants"
	"cake_admin/helper"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func setAuthCookies(c *fiber.Ctx, access, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false, // nếu deploy HTTPS thì true
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("loginInput").(model.LoginInput)

	account, err := helper.GetUserByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if !helper.CheckPasswordHash(input.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}
	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	token, err := helper.GenerateAccessToken(*account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(*account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	setAuthCookies(c, token, refreshToken)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accessToken":  token,
		"refreshToken": refreshToken,
		"account": fiber.Map{
			"id":       account.ID,
			"username": account.Username,
			"role":     account.Role,
			"chatId":   account.ChatID,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	refresh := c.Locals("refreshToken").(string)

	token, err := helper.ParseToken(refresh)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ", err)
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	accountId, _ := claims["accountId"].(float64)

	c.Locals("user", token)
	account, errResp := helper.CurrentAccount(c)
	if account == nil {
		return errResp
	}
	if uint(accountId) != account.ID || !account.Active {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, nil)
	}

	access, err := helper.GenerateAccessToken(*account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	newRefresh, err := helper.GenerateRefreshToken(*account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	setAuthCookies(c, access, newRefresh)
	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{AccessToken: access, RefreshToken: newRefresh})
}

func Me(c *fiber.Ctx) error {
	account, errResp := helper.CurrentAccount(c)
	if account == nil {
		return errResp
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}
