package model

type Account struct {
	DTO
	Username     string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password     string `gorm:"not null" json:"-"`
	RefreshToken string `json:"-"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	Role         string `json:"role"`
	// ChatID là id dùng trong hội thoại với khách
	ChatID string `gorm:"size:36;uniqueIndex" json:"chatId"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
