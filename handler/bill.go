package handler

import (
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/helper"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetBills(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.FilterBill)

	db := database.DB.Model(&model.Bill{})
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CustomerId != nil {
		db = db.Where("customer_id = ?", *filter.CustomerId)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	var bills []model.Bill
	if err := utils.ApplyPagination(db, filter.Limit, filter.Page).
		Preload("Customer").
		Order("created_at desc").
		Find(&bills).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	response := &model.ResponseCustom{
		Rows:       bills,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func loadBill(id string) (*model.Bill, error) {
	var bill model.Bill
	err := database.DB.
		Preload("Customer").
		Preload("Address").
		Preload("Voucher").
		Preload("Items").
		Preload("Items.Product").
		First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func GetBillById(c *fiber.Ctx) error {
	bill, err := loadBill(c.Locals("billId").(string))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
	}

	qr, err := utils.QRCodeDataURL(bill.ID, 300)
	if err != nil {
		log.Printf("Lỗi tạo QR cho đơn hàng %s: %v", bill.ID, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"bill":        bill,
		"statusLabel": utils.GetBillStatusLabel(bill.Status),
		"nextStates":  model.AllowedNextStates(bill.Status),
		"canDelete":   model.CanDelete(bill.Status),
		"qrCode":      qr,
	})
}

// UpdateBillStatus PUT /bills/:id {status}
func UpdateBillStatus(c *fiber.Ctx) error {
	target := c.Locals("targetStatus").(model.BillStatus)
	claim, _ := helper.GetInfoAccountFromToken(c)

	bill, err := loadBill(c.Locals("billId").(string))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
	}

	evt, err := helper.TransitionBill(database.DB, bill, target, claim.AccountId)
	switch {
	case errors.Is(err, helper.ErrInvalidTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.BILL_INVALID_TRANSITION, err)
	case errors.Is(err, helper.ErrBillChanged):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn hàng vừa được cập nhật bởi người khác, vui lòng tải lại", err)
	case err != nil:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.BILL_UPDATE_FAILED, err)
	}

	go helper.PublishBillStatus(evt)
	if bill.Customer != nil {
		utils.SendBillStatusEmail(bill.Customer.Email, *bill)
	}

	log.Printf("Admin %d chuyển đơn %s: %s -> %s", claim.AccountId, bill.ID, evt.From, evt.To)
	return utils.SuccessResponse(c, fiber.StatusOK, bill)
}

func DeleteBill(c *fiber.Ctx) error {
	id := c.Locals("billId").(string)

	var bill model.Bill
	if err := database.DB.First(&bill, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
	}
	if !model.CanDelete(bill.Status) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.BILL_NOT_DELETABLE, nil)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&model.BillItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND status IN ?", bill.ID, []model.BillStatus{model.BillPending, model.BillCancelled}).
			Delete(&model.Bill{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrBillChanged
		}
		return nil
	})
	if errors.Is(err, helper.ErrBillChanged) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.BILL_NOT_DELETABLE, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa đơn hàng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Xóa đơn hàng thành công"})
}
