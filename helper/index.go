package helper

import (
	"cake_admin/config"
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/model"
	"cake_admin/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func jwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GetUserByUsername(u string) (*model.Account, error) {
	var account model.Account
	if err := database.DB.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func signToken(account model.Account, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"accountId": account.ID,
		"username":  account.Username,
		"role":      account.Role,
		"chatId":    account.ChatID,
		"exp":       time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret())
}

func GenerateAccessToken(account model.Account) (string, error) {
	return signToken(account, 60*time.Minute)
}

func GenerateRefreshToken(account model.Account) (string, error) {
	return signToken(account, 7*24*time.Hour)
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Xác thực thuật toán ký là HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

// GetInfoAccountFromToken đọc claim đã được middleware.Protected gắn vào Locals
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false
	}
	accountId, _ := claims["accountId"].(float64)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	chatId, _ := claims["chatId"].(string)
	return model.TokenClaim{
		AccountId: uint(accountId),
		Username:  username,
		Role:      role,
		ChatId:    chatId,
	}, role == constants.ROLE_ADMIN
}

// CurrentAccount nạp tài khoản đang đăng nhập; tự trả lỗi HTTP nếu không có
func CurrentAccount(c *fiber.Ctx) (*model.Account, error) {
	claim, _ := GetInfoAccountFromToken(c)
	if claim.AccountId == 0 {
		return nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, "Phiên đăng nhập không hợp lệ", nil)
	}
	var account model.Account
	if err := database.DB.First(&account, claim.AccountId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Account not found: id=%d", claim.AccountId)
			return nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", err)
		}
		return nil, utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &account, nil
}
