package utils

import "cake_admin/model"

// Nhãn tiếng Việt hiển thị cho trạng thái đơn
var billStatusLabels = map[model.BillStatus]string{
	model.BillPending:   "Đang xử lý",
	model.BillConfirmed: "Đã xác nhận",
	model.BillReady:     "Chờ giao hàng",
	model.BillCancelled: "Đã hủy",
}

func GetBillStatusLabel(status model.BillStatus) string {
	if label, ok := billStatusLabels[status]; ok {
		return label
	}
	return "Không xác định"
}
