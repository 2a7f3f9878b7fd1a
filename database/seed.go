package database

import (
	"cake_admin/config"
	"cake_admin/constants"
	"cake_admin/model"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	password := config.ConfigDefault("ADMIN_PASSWORD", "123456cake")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Username: "Administration", Password: string(bytes), Active: true, Role: constants.ROLE_ADMIN, ChatID: uuid.NewString()},
	}
	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	products := []model.Product{
		{Name: "Bánh kem dâu tây", Slug: "banh-kem-dau-tay", Price: 350000, Stock: 10, Category: "banh-kem", IsActive: true},
		{Name: "Bánh mousse chanh dây", Slug: "banh-mousse-chanh-day", Price: 280000, Stock: 8, Category: "mousse", IsActive: true},
		{Name: "Bánh bông lan trứng muối", Slug: "banh-bong-lan-trung-muoi", Price: 120000, Stock: 20, Category: "bong-lan", IsActive: true},
	}
	for _, product := range products {
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Name, "error:", err)
		}
	}
	log.Println("Seed data done")
}
