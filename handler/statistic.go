package handler

import (
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/model"
	"cake_admin/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AdminStats struct {
	Products  int64 `json:"products"`
	Customers int64 `json:"customers"`
	Vouchers  int64 `json:"vouchers"`

	BillsByStatus map[model.BillStatus]int64 `json:"billsByStatus"`
	TotalRevenue  float64                    `json:"totalRevenue"`
	TodayRevenue  float64                    `json:"todayRevenue"`
	TodayBills    int64                      `json:"todayBills"`
	RevenueGrowth float64                    `json:"revenueGrowth"` // %
	BillsGrowth   float64                    `json:"billsGrowth"`   // %
}

func growthPercent(today, yesterday float64) float64 {
	if yesterday == 0 {
		if today > 0 {
			return 100
		}
		return 0
	}
	return (today - yesterday) / yesterday * 100
}

func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

func revenueBetween(from, to time.Time) (float64, int64) {
	var row struct {
		Revenue float64
		Bills   int64
	}
	database.DB.Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS bills
		FROM bills
		WHERE status <> ? AND deleted_at IS NULL
		  AND created_at >= ? AND created_at < ?`,
		model.BillCancelled, from, to,
	).Scan(&row)
	return row.Revenue, row.Bills
}

// GetAdminStats GET /statistic
func GetAdminStats(c *fiber.Ctx) error {
	db := database.DB
	stats := AdminStats{BillsByStatus: map[model.BillStatus]int64{}}

	db.Model(&model.Product{}).Count(&stats.Products)
	db.Model(&model.Customer{}).Count(&stats.Customers)
	db.Model(&model.Voucher{}).Where("status = ?", model.VoucherActive).Count(&stats.Vouchers)

	var byStatus []struct {
		Status model.BillStatus
		Total  int64
	}
	if err := db.Model(&model.Bill{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	for _, s := range model.BillStatuses() {
		stats.BillsByStatus[s] = 0
	}
	for _, row := range byStatus {
		stats.BillsByStatus[row.Status] = row.Total
	}

	db.Model(&model.Bill{}).
		Where("status <> ?", model.BillCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue)

	todayStart, todayEnd := dayRange(time.Now())
	stats.TodayRevenue, stats.TodayBills = revenueBetween(todayStart, todayEnd)
	yRevenue, yBills := revenueBetween(todayStart.AddDate(0, 0, -1), todayStart)
	stats.RevenueGrowth = growthPercent(stats.TodayRevenue, yRevenue)
	stats.BillsGrowth = growthPercent(float64(stats.TodayBills), float64(yBills))

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
