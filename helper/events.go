package helper

import (
	"cake_admin/config"
	"cake_admin/kafka"
	"cake_admin/model"
	"encoding/json"
	"log"
	"strings"
)

var billEvents kafka.IProducer

// InitBillEvents bật việc đẩy sự kiện đổi trạng thái đơn lên Kafka nếu có KAFKA_BROKERS
func InitBillEvents() {
	brokers := config.Config("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("KAFKA_BROKERS chưa cấu hình, bỏ qua sự kiện trạng thái đơn")
		return
	}
	p, err := kafka.NewProducer(strings.Split(brokers, ","), config.ConfigDefault("BILL_STATUS_TOPIC", "BILL_STATUS_TOPIC"))
	if err != nil {
		log.Printf("Không kết nối được Kafka: %v", err)
		return
	}
	billEvents = p
}

func CloseBillEvents() {
	if billEvents != nil {
		if err := billEvents.Close(); err != nil {
			log.Printf("Lỗi đóng Kafka producer: %v", err)
		}
		billEvents = nil
	}
}

func PublishBillStatus(events ...model.BillStatusEvent) {
	if billEvents == nil || len(events) == 0 {
		return
	}
	payloads := make([][]byte, 0, len(events))
	for _, evt := range events {
		b, err := json.Marshal(evt)
		if err != nil {
			log.Printf("Lỗi mã hóa sự kiện đơn %s: %v", evt.BillID, err)
			continue
		}
		payloads = append(payloads, b)
	}
	if err := billEvents.Push(payloads); err != nil {
		log.Printf("Lỗi đẩy %d sự kiện trạng thái đơn: %v", len(payloads), err)
	}
}
