package database

import (
	"cake_admin/config"
	"cake_admin/model"
	"fmt"
	"log"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.ConfigDefault("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
		config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	log.Println("Connection Opened to Database")
	if err := DB.AutoMigrate(
		&model.Account{},
		&model.Customer{},
		&model.Address{},
		&model.Product{},
		&model.Voucher{},
		&model.Bill{},
		&model.BillItem{},
		&model.ChatMessage{},
	); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}
	log.Println("Database Migrated")
}
