package helper

import (
	"cake_admin/database"
	"cake_admin/model"
	"errors"

	"gorm.io/gorm"
)

func GetCustomerById(id string) (*model.Customer, error) {
	var customer model.Customer
	if err := database.DB.Preload("Addresses").First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// CustomerEmails trả về map id -> email cho danh sách khách
func CustomerEmails(ids []string) (map[string]string, error) {
	emails := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return emails, nil
	}
	var customers model.Customers
	if err := database.DB.Select("id", "email").Where("id IN ?", ids).Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, cus := range customers {
		emails[cus.ID] = cus.Email
	}
	return emails, nil
}
