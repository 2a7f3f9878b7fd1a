package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"cake_admin/model"
)

var (
	ErrInvalidTransition = errors.New("invalid bill status transition")
	ErrNotDeletable      = errors.New("bill cannot be deleted in its current status")
	ErrBillNotLoaded     = errors.New("bill is not in the loaded list")
)

// BillStore là phần REST API đơn hàng mà BillController cần
type BillStore interface {
	ListBills(ctx context.Context) ([]model.Bill, error)
	UpdateBillStatus(ctx context.Context, id string, status model.BillStatus) error
	DeleteBill(ctx context.Context, id string) error
}

// BillController chặn các yêu cầu chuyển trạng thái không hợp lệ và luôn tải lại
// danh sách từ server sau mỗi thay đổi thành công, không cập nhật lạc quan.
type BillController struct {
	store  BillStore
	logger *log.Logger

	mu    sync.RWMutex
	bills []model.Bill
}

func NewBillController(store BillStore, logger *log.Logger) *BillController {
	if logger == nil {
		logger = log.Default()
	}
	return &BillController{store: store, logger: logger}
}

func (bc *BillController) AllowedNextStates(current model.BillStatus) []model.BillStatus {
	return model.AllowedNextStates(current)
}

func (bc *BillController) CanTransition(current, target model.BillStatus) bool {
	return model.CanTransition(current, target)
}

func (bc *BillController) CanDelete(current model.BillStatus) bool {
	return model.CanDelete(current)
}

// Refresh thay danh sách trong bộ nhớ; lỗi thì giữ nguyên danh sách cũ
func (bc *BillController) Refresh(ctx context.Context) error {
	bills, err := bc.store.ListBills(ctx)
	if err != nil {
		bc.logger.Printf("Lỗi tải danh sách đơn hàng: %v", err)
		return err
	}
	bc.mu.Lock()
	bc.bills = bills
	bc.mu.Unlock()
	return nil
}

func (bc *BillController) Bills() []model.Bill {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	out := make([]model.Bill, len(bc.bills))
	copy(out, bc.bills)
	return out
}

func (bc *BillController) status(id string) (model.BillStatus, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	for _, b := range bc.bills {
		if b.ID == id {
			return b.Status, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrBillNotLoaded, id)
}

// ApplyTransition gửi yêu cầu đổi trạng thái rồi tải lại danh sách.
// Lỗi từ backend (*APIError) được trả về nguyên vẹn để hiển thị, không thử lại.
func (bc *BillController) ApplyTransition(ctx context.Context, billID string, target model.BillStatus) error {
	current, err := bc.status(billID)
	if err != nil {
		return err
	}
	if !model.CanTransition(current, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	if err := bc.store.UpdateBillStatus(ctx, billID, target); err != nil {
		bc.logger.Printf("Cập nhật trạng thái đơn %s (%s -> %s) thất bại: %v", billID, current, target, err)
		return err
	}

	// lỗi tải lại đã được log, thao tác ghi vẫn thành công
	_ = bc.Refresh(ctx)
	return nil
}

func (bc *BillController) Delete(ctx context.Context, billID string) error {
	current, err := bc.status(billID)
	if err != nil {
		return err
	}
	if !model.CanDelete(current) {
		return fmt.Errorf("%w: %s", ErrNotDeletable, current)
	}

	if err := bc.store.DeleteBill(ctx, billID); err != nil {
		bc.logger.Printf("Xóa đơn %s thất bại: %v", billID, err)
		return err
	}

	_ = bc.Refresh(ctx)
	return nil
}
