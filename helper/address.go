package helper

import (
	"cake_admin/model"
	"strings"
)

// normalizeVN mở rộng các viết tắt địa chỉ hay gặp
func normalizeVN(s string) string {
	s = strings.TrimSpace(s)
	replacements := []struct{ from, to string }{
		{"TP.", "Thành phố "},
		{"Đ.", "Đường "},
		{"P.", "Phường "},
		{"Q.", "Quận "},
	}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return strings.Join(strings.Fields(s), " ")
}

func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatAddress ghép địa chỉ giao hàng để hiển thị và gửi mail
func FormatAddress(a *model.Address) string {
	if a == nil {
		return ""
	}
	parts := []string{}
	for _, p := range []string{SafeString(a.Street), SafeString(a.Ward), SafeString(a.District), SafeString(a.Province)} {
		if p = normalizeVN(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return normalizeVN(a.FullAddress)
	}
	return strings.Join(parts, ", ")
}
