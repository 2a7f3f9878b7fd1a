package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_STAFF = "STAFF"
)

const (
	ERROR_INTERNAL_ERROR     = "Lỗi hệ thống, vui lòng thử lại sau"
	ERROR_INPUT              = "Dữ liệu đầu vào không hợp lệ"
	DATA_INPUT_IS_NOT_NUMBER = "Tham số phải là số"
	MISSING_LOGIN_INPUT      = "Vui lòng nhập tên đăng nhập và mật khẩu"
	INVALID_USERNAME         = "Tên đăng nhập không tồn tại"
	INVALID_PASSWORD         = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE       = "Tài khoản đã bị khóa"
	ONLY_ADMIN               = "Chỉ admin được phép"

	BILL_NOT_FOUND          = "Không tìm thấy đơn hàng"
	BILL_INVALID_TRANSITION = "Không thể chuyển trạng thái đơn hàng"
	BILL_NOT_DELETABLE      = "Chỉ được xóa đơn hàng đang xử lý hoặc đã hủy"
	BILL_UPDATE_FAILED      = "Cập nhật trạng thái đơn hàng thất bại"

	MESSAGE_SEND_FAILED  = "Gửi tin nhắn thất bại"
	MESSAGE_LOAD_FAILED  = "Lỗi tải tin nhắn"
	MESSAGE_INVALID_BODY = "Tin nhắn phải có nội dung hoặc ảnh"

	PRODUCT_NOT_FOUND = "Không tìm thấy sản phẩm"
	VOUCHER_NOT_FOUND = "Không tìm thấy voucher"
)
