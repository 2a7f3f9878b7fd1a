package validate

import (
	"cake_admin/constants"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func BillId(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(key)
		if _, err := uuid.Parse(id); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BILL_NOT_FOUND, errors.New("invalid bill id"))
		}
		c.Locals("billId", id)
		return c.Next()
	}
}

func UpdateBillStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateBillStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		status, err := model.ParseBillStatus(input.Status)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái đơn hàng không hợp lệ", err)
		}
		c.Locals("targetStatus", status)
		return c.Next()
	}
}

func FilterBill() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := new(model.FilterBill)
		if err := c.QueryParser(filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if filter.Status != nil {
			status, err := model.ParseBillStatus(*filter.Status)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái đơn hàng không hợp lệ", err)
			}
			filter.Status = utils.Ptr(string(status))
		}
		c.Locals("filter", *filter)
		return c.Next()
	}
}
