package model

type Customer struct {
	UUIDModel
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	UserName  string    `json:"username"`
	AvatarUrl *string   `json:"avatarUrl"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

type Customers []Customer
