package model

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrMessageBody = errors.New("message must carry exactly one of text or image")

// ChatMessage là một tin nhắn giữa admin và một khách hàng.
// ID rỗng cho tới khi server xác nhận; ClientID do client sinh để đối soát bản tạm.
type ChatMessage struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id,omitempty"`
	ClientID   string    `gorm:"size:36;index" json:"clientId,omitempty"`
	SenderID   string    `gorm:"size:36;index;not null" json:"senderId"`
	ReceiverID string    `gorm:"size:36;index;not null" json:"receiverId"`
	Message    string    `gorm:"type:text" json:"message,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

type ChatMessages []ChatMessage

// Involves: tin nhắn thuộc cuộc hội thoại của userID
func (m ChatMessage) Involves(userID string) bool {
	return userID != "" && (m.SenderID == userID || m.ReceiverID == userID)
}

// Peer trả về id phía bên kia so với adminID
func (m ChatMessage) Peer(adminID string) string {
	if m.SenderID == adminID {
		return m.ReceiverID
	}
	return m.SenderID
}

func (m ChatMessage) Validate() error {
	if (m.Message == "") == (m.ImageURL == "") {
		return ErrMessageBody
	}
	return nil
}

type ConversationSummary struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	LastMessage string    `json:"lastMessage"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SendMessageInput struct {
	ClientID   string `json:"clientId" validate:"omitempty,max=36"`
	ReceiverID string `json:"receiverId" validate:"required,max=36"`
	Message    string `json:"message" validate:"required_without=ImageURL,max=2000"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
}

// SendAck là payload ack của sự kiện sendMessage
type SendAck struct {
	Message ChatMessage `json:"message"`
}

const (
	ChatEventJoin    = "join"
	ChatEventSend    = "sendMessage"
	ChatEventReceive = "receiveMessage"
	ChatEventAck     = "ack"
)

// ChatFrame là khung JSON trao đổi qua websocket chat
type ChatFrame struct {
	Event string          `json:"event"`
	AckID string          `json:"ackId,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

type JoinPayload struct {
	UserID string `json:"userId"`
}
