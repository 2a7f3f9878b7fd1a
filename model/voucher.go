package model

import "time"

const (
	VoucherActive   = "active"
	VoucherInactive = "inactive"
	VoucherExpired  = "expired"
)

type Voucher struct {
	DTO
	Code          string    `gorm:"unique;not null" json:"code"`
	Description   string    `gorm:"type:text" json:"description"`
	DiscountType  string    `gorm:"not null" json:"discountType"` // percentage, fixed
	DiscountValue float64   `gorm:"type:decimal(12,2);not null" json:"discountValue"`
	MinOrder      float64   `gorm:"type:decimal(12,2);default:0" json:"minOrder"`
	StartDate     time.Time `gorm:"not null" json:"startDate"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expiresAt"`
	MaxUsage      int       `gorm:"default:0" json:"maxUsage"`
	Status        string    `gorm:"default:'active';not null" json:"status"`
}

type Vouchers []Voucher

type CreateVoucherInput struct {
	Code          string    `json:"code" validate:"required,max=50"`
	Description   string    `json:"description"`
	DiscountType  string    `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue float64   `json:"discountValue" validate:"required,gt=0"`
	MinOrder      float64   `json:"minOrder" validate:"gte=0"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	ExpiresAt     time.Time `json:"expiresAt" validate:"required,gtfield=StartDate"`
	MaxUsage      int       `json:"maxUsage" validate:"gte=0"`
}

type EditVoucherInput struct {
	Description   *string    `json:"description"`
	DiscountValue *float64   `json:"discountValue" validate:"omitempty,gt=0"`
	MinOrder      *float64   `json:"minOrder" validate:"omitempty,gte=0"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	MaxUsage      *int       `json:"maxUsage" validate:"omitempty,gte=0"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active inactive expired"`
}
