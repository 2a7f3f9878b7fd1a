package helper

import (
	"cake_admin/model"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueProductSlug sinh slug không trùng, bỏ qua chính sản phẩm excludeId khi sửa
func GenerateUniqueProductSlug(tx *gorm.DB, name string, excludeId uint) string {
	base := slug.MakeLang(name, "vi")
	if base == "" {
		base = "san-pham"
	}
	result := base
	i := 1

	for {
		var count int64
		q := tx.Model(&model.Product{}).Where("slug = ?", result)
		if excludeId != 0 {
			q = q.Where("id <> ?", excludeId)
		}
		q.Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
