package model

type Product struct {
	DTO
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;size:255" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	ImageUrl    *string `json:"imageUrl"`
	ImageId     *string `json:"-"`
	Category    string  `json:"category"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
}

type Products []Product

type CreateProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageUrl    *string `json:"imageUrl" validate:"omitempty,url"`
	Category    string  `json:"category"`
}

type EditProductInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	ImageUrl    *string  `json:"imageUrl" validate:"omitempty,url"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

type FilterProduct struct {
	Pagination
	SearchKey string `query:"searchKey"`
	Category  string `query:"category"`
}
