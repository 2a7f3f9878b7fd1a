package helper

import (
	"cake_admin/model"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBillChanged       = errors.New("bill status changed concurrently")
	ErrInvalidTransition = errors.New("transition not allowed")
)

// TransitionBill đổi trạng thái đơn theo bảng chuyển trạng thái.
// Điều kiện status cũ nằm trong câu UPDATE để hai admin không ghi đè nhau.
func TransitionBill(tx *gorm.DB, bill *model.Bill, target model.BillStatus, changedBy uint) (model.BillStatusEvent, error) {
	from := bill.Status
	if !model.CanTransition(from, target) {
		return model.BillStatusEvent{}, fmt.Errorf("%s -> %s: %w", from, target, ErrInvalidTransition)
	}

	now := time.Now()
	updates := map[string]any{"status": target}
	switch target {
	case model.BillConfirmed:
		updates["confirmed_at"] = now
	case model.BillCancelled:
		updates["cancelled_at"] = now
	}

	res := tx.Model(&model.Bill{}).
		Where("id = ? AND status = ?", bill.ID, from).
		Updates(updates)
	if res.Error != nil {
		return model.BillStatusEvent{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.BillStatusEvent{}, ErrBillChanged
	}

	bill.Status = target
	return model.BillStatusEvent{
		BillID:     bill.ID,
		CustomerID: bill.CustomerID,
		From:       from,
		To:         target,
		ChangedBy:  changedBy,
		ChangedAt:  now,
	}, nil
}
