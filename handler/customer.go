package handler

import (
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/helper"
	"cake_admin/model"
	"cake_admin/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func GetCustomers(c *fiber.Ctx) error {
	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Customer{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(user_name) LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đếm tổng số khách hàng", err)
	}

	var customers model.Customers
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách khách hàng", err)
	}

	response := &model.ResponseCustom{
		Rows:       customers,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetCustomerById trả về khách kèm địa chỉ, dùng cho khung chat và chi tiết đơn
func GetCustomerById(c *fiber.Ctx) error {
	customer, err := helper.GetCustomerById(c.Params("customerId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy khách hàng", nil)
	}

	addresses := make([]string, 0, len(customer.Addresses))
	for i := range customer.Addresses {
		addresses = append(addresses, helper.FormatAddress(&customer.Addresses[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer":  customer,
		"addresses": addresses,
	})
}
