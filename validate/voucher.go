package validate

import (
	"cake_admin/constants"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateVoucher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateVoucherInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}
		if input.DiscountType == "percentage" && input.DiscountValue > 100 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Phần trăm giảm không được vượt quá 100", nil)
		}
		c.Locals("createInput", input)
		return c.Next()
	}
}

func EditVoucher(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valueKey, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		var input model.EditVoucherInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}
		c.Locals("updateInput", input)
		c.Locals("voucherId", valueKey)
		return c.Next()
	}
}
