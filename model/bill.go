package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type BillStatus string

const (
	BillPending   BillStatus = "pending"
	BillConfirmed BillStatus = "confirmed"
	BillReady     BillStatus = "ready"
	BillCancelled BillStatus = "cancelled"
)

var ErrUnknownBillStatus = errors.New("unknown bill status")

// billTransitions là bảng chuyển trạng thái duy nhất của đơn hàng
var billTransitions = map[BillStatus][]BillStatus{
	BillPending:   {BillConfirmed, BillCancelled},
	BillConfirmed: {BillReady, BillCancelled},
	BillReady:     {BillCancelled},
	BillCancelled: {},
}

// Từ vựng cũ của màn quản lý đơn thứ hai
var legacyBillStatuses = map[string]BillStatus{
	"Đang xử lý":    BillPending,
	"Đã xác nhận":   BillConfirmed,
	"Chờ giao hàng": BillReady,
	"Đã hủy":        BillCancelled,
}

func BillStatuses() []BillStatus {
	return []BillStatus{BillPending, BillConfirmed, BillReady, BillCancelled}
}

func (s BillStatus) Valid() bool {
	_, ok := billTransitions[s]
	return ok
}

// AllowedNextStates trả về các trạng thái có thể chuyển tới; rỗng với cancelled hoặc giá trị lạ
func AllowedNextStates(current BillStatus) []BillStatus {
	next := billTransitions[current]
	out := make([]BillStatus, len(next))
	copy(out, next)
	return out
}

func CanTransition(current, target BillStatus) bool {
	for _, s := range billTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// CanDelete: chỉ đơn đang xử lý hoặc đã hủy mới được xóa
func CanDelete(current BillStatus) bool {
	return current == BillPending || current == BillCancelled
}

func ParseBillStatus(s string) (BillStatus, error) {
	s = strings.TrimSpace(s)
	if st := BillStatus(strings.ToLower(s)); st.Valid() {
		return st, nil
	}
	if st, ok := legacyBillStatuses[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBillStatus, s)
}

type Bill struct {
	UUIDModel
	Status      BillStatus `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	TotalAmount float64    `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	CustomerID  string     `gorm:"size:36;index;not null" json:"customerId"`
	Customer    *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	AddressID   uint       `json:"addressId"`
	Address     *Address   `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	VoucherID   *uint      `json:"voucherId,omitempty"`
	Voucher     *Voucher   `gorm:"foreignKey:VoucherID" json:"voucher,omitempty"`
	Items       []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

type Bills []Bill

type BillItem struct {
	DTO
	BillID    string   `gorm:"size:36;index;not null" json:"billId"`
	ProductID uint     `gorm:"not null" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	UnitPrice float64  `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
}

type UpdateBillStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type FilterBill struct {
	Pagination
	Status     *string `query:"status"`
	CustomerId *string `query:"customerId"`
}

// BillStatusEvent được đẩy ra topic sau mỗi lần chuyển trạng thái
type BillStatusEvent struct {
	BillID     string     `json:"billId"`
	CustomerID string     `json:"customerId"`
	From       BillStatus `json:"from"`
	To         BillStatus `json:"to"`
	ChangedBy  uint       `json:"changedBy"`
	ChangedAt  time.Time  `json:"changedAt"`
}
