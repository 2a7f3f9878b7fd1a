package handler

import (
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/helper"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetProducts(c *fiber.Ctx) error {
	var filter model.FilterProduct
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Product{})
	if search := strings.TrimSpace(filter.SearchKey); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đếm tổng số sản phẩm", err)
	}

	var products model.Products
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("id DESC").
		Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách sản phẩm", err)
	}

	response := &model.ResponseCustom{
		Rows:       products,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetProductById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func CreateProduct(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateProductInput)

	var product model.Product
	if err := copier.Copy(&product, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể sao chép dữ liệu", err)
	}
	product.IsActive = true

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		product.Slug = helper.GenerateUniqueProductSlug(tx, product.Name, 0)
		return tx.Create(&product).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo sản phẩm", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

func EditProduct(c *fiber.Ctx) error {
	input := c.Locals("updateInput").(model.EditProductInput)
	id := c.Locals("productId").(int)

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	oldName := product.Name
	if err := copier.CopyWithOption(&product, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể sao chép dữ liệu", err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if product.Name != oldName {
			product.Slug = helper.GenerateUniqueProductSlug(tx, product.Name, product.ID)
		}
		return tx.Save(&product).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật sản phẩm thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// UploadProductImage thay ảnh sản phẩm, xóa ảnh cũ trên Cloudinary
func UploadProductImage(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file ảnh", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không đọc được file ảnh", err)
	}
	defer file.Close()

	img, err := helper.UploadImage(c.Context(), "products", fmt.Sprintf("%s-%d", product.Slug, product.ID), file)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tải ảnh thất bại", err)
	}

	oldId := helper.SafeString(product.ImageId)
	if oldId == "" {
		oldId = helper.ExtractPublicID(helper.SafeString(product.ImageUrl))
	}
	if oldId != "" && oldId != img.PublicID {
		if err := helper.DestroyImage(c.Context(), oldId); err != nil {
			log.Printf("Không xóa được ảnh cũ %s: %v", oldId, err)
		}
	}

	product.ImageUrl = utils.StringPtr(img.URL)
	product.ImageId = utils.StringPtr(img.PublicID)
	if err := database.DB.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật sản phẩm thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func DeleteProducts(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	var inUse int64
	if err := database.DB.Model(&model.BillItem{}).
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bill_items.product_id IN ? AND bills.status IN ?", input.IDs,
			[]model.BillStatus{model.BillConfirmed, model.BillReady}).
		Count(&inUse).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if inUse > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Sản phẩm đang nằm trong đơn hàng chưa hoàn tất", nil)
	}

	if err := database.DB.Where("id IN ?", input.IDs).Delete(&model.Product{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa sản phẩm thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Xóa sản phẩm thành công"})
}
