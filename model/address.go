package model

// Address là địa chỉ giao bánh của khách
type Address struct {
	DTO
	CustomerID  string  `gorm:"size:36;index" json:"customerId"`
	Receiver    string  `json:"receiver"`
	Phone       string  `json:"phone"`
	Province    *string `json:"province"`
	District    *string `json:"district"`
	Ward        *string `json:"ward"`
	Street      *string `json:"street"`
	FullAddress string  `gorm:"not null" validate:"required" json:"fullAddress"`
}
