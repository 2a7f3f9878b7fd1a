package console

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSessionExpired = errors.New("session expired")

// Session giữ token đăng nhập của admin; hạn dùng được đọc một lần khi tạo.
// Chữ ký không được kiểm tra ở đây, server mới là nơi xác thực token.
type Session struct {
	Token     string
	AccountID uint
	Username  string
	ChatID    string
	ExpiresAt time.Time
}

func NewSession(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if exp == nil {
		return nil, errors.New("parse session token: missing exp claim")
	}

	s := &Session{Token: token, ExpiresAt: exp.Time}
	if id, ok := claims["accountId"].(float64); ok {
		s.AccountID = uint(id)
	}
	s.Username, _ = claims["username"].(string)
	s.ChatID, _ = claims["chatId"].(string)
	return s, nil
}

func (s *Session) Valid(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// authorization trả về header Authorization, lỗi nếu phiên đã hết hạn
func (s *Session) authorization(now time.Time) (string, error) {
	if !s.Valid(now) {
		return "", ErrSessionExpired
	}
	return "Bearer " + s.Token, nil
}
