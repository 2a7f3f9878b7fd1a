package helper

import (
	"cake_admin/config"
	"cake_admin/database"
	"cake_admin/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var (
	billScheduler gocron.Scheduler
	voucherCron   *cron.Cron
)

// CancelStalePendingBills hủy các đơn pending quá hạn chờ xác nhận
func CancelStalePendingBills() {
	ttl := time.Duration(config.ConfigInt("PENDING_BILL_TTL_HOURS", 72)) * time.Hour
	cutoff := time.Now().Add(-ttl)

	var bills []model.Bill
	if err := database.DB.
		Where("status = ? AND created_at < ?", model.BillPending, cutoff).
		Find(&bills).Error; err != nil {
		log.Printf("Lỗi quét đơn pending quá hạn: %v", err)
		return
	}

	var events []model.BillStatusEvent
	for i := range bills {
		evt, err := TransitionBill(database.DB, &bills[i], model.BillCancelled, 0)
		if err != nil {
			log.Printf("Không hủy được đơn %s: %v", bills[i].ID, err)
			continue
		}
		events = append(events, evt)
	}

	if len(events) > 0 {
		log.Printf("[CRON] Đã hủy %d đơn pending quá %s", len(events), ttl)
		PublishBillStatus(events...)
	}
}

func StartBillScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}
	billScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 10, 0),
			),
		),
		gocron.NewTask(CancelStalePendingBills),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Bill scheduler started (00:10 ICT)")
}

func StopBillScheduler() {
	if billScheduler != nil {
		if err := billScheduler.Shutdown(); err != nil {
			log.Printf("Lỗi dừng bill scheduler: %v", err)
		}
	}
}

func ExpireVouchers() {
	result := database.DB.Model(&model.Voucher{}).
		Where("status = ? AND expires_at < ?", model.VoucherActive, time.Now()).
		Update("status", model.VoucherExpired)

	if result.Error != nil {
		log.Printf("Lỗi cập nhật voucher hết hạn: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d voucher sang 'expired'", result.RowsAffected)
	}
}

func StartVoucherScheduler() {
	voucherCron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if _, err := voucherCron.AddFunc("*/10 * * * *", ExpireVouchers); err != nil {
		log.Printf("Lỗi khởi tạo voucher scheduler: %v", err)
		return
	}

	voucherCron.Start()
	log.Println("Voucher scheduler đã khởi động (mỗi 10 phút)")
}

func StopVoucherScheduler() {
	if voucherCron != nil {
		voucherCron.Stop()
		log.Println("Voucher scheduler đã dừng")
	}
}
