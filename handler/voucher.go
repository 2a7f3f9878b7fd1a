package handler

import (
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetVouchers(c *fiber.Ctx) error {
	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Voucher{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if code := strings.TrimSpace(c.Query("code")); code != "" {
		query = query.Where("code LIKE ?", "%"+strings.ToUpper(code)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đếm tổng số voucher", err)
	}

	var vouchers model.Vouchers
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("expires_at DESC").
		Find(&vouchers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách voucher", err)
	}

	response := &model.ResponseCustom{
		Rows:       vouchers,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetVoucherById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var voucher model.Voucher
	if err := database.DB.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VOUCHER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, voucher)
}

func CreateVoucher(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateVoucherInput)

	var count int64
	database.DB.Model(&model.Voucher{}).Where("code = ?", input.Code).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Mã voucher đã tồn tại", nil)
	}

	var voucher model.Voucher
	if err := copier.Copy(&voucher, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể sao chép dữ liệu", err)
	}
	voucher.Status = model.VoucherActive

	if err := database.DB.Create(&voucher).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo voucher", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, voucher)
}

func EditVoucher(c *fiber.Ctx) error {
	input := c.Locals("updateInput").(model.EditVoucherInput)
	id := c.Locals("voucherId").(int)

	var voucher model.Voucher
	if err := database.DB.First(&voucher, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VOUCHER_NOT_FOUND, err)
	}
	if err := copier.CopyWithOption(&voucher, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể sao chép dữ liệu", err)
	}
	if !voucher.ExpiresAt.After(voucher.StartDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ngày hết hạn phải sau ngày bắt đầu", nil)
	}

	if err := database.DB.Save(&voucher).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật voucher thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, voucher)
}

func DeleteVouchers(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	if err := database.DB.Where("id IN ?", input.IDs).Delete(&model.Voucher{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa voucher thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Xóa voucher thành công"})
}
