package handler

import (
	"cake_admin/database"
	"cake_admin/model"
	"cake_admin/validate"
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// wsConn gom các lần ghi vào một kết nối; gorilla chỉ cho một writer tại một thời điểm
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *wsConn) writeFrame(frame model.ChatFrame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(frame)
}

func (w *wsConn) writeRaw(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func ackFrame(ackId string, msg *model.ChatMessage, err error) model.ChatFrame {
	frame := model.ChatFrame{Event: model.ChatEventAck, AckID: ackId}
	if err != nil {
		frame.Error = err.Error()
		return frame
	}
	data, mErr := json.Marshal(model.SendAck{Message: *msg})
	if mErr != nil {
		frame.Error = mErr.Error()
		return frame
	}
	frame.Data = data
	return frame
}

var (
	errJoinRequired  = errors.New("join required")
	errJoinForbidden = errors.New("forbidden")
)

// joinRoom kiểm tra khung join: chỉ được vào phòng đúng chatId trong token
func joinRoom(frame model.ChatFrame, chatId string) (string, error) {
	var join model.JoinPayload
	if frame.Event != model.ChatEventJoin || json.Unmarshal(frame.Data, &join) != nil || join.UserID == "" {
		return "", errJoinRequired
	}
	if chatId == "" || join.UserID != chatId {
		return "", errJoinForbidden
	}
	return join.UserID, nil
}

// ChatWebsocket GET /chat/ws
// Khung đầu tiên phải là join với chatId của admin đang đăng nhập.
func ChatWebsocket(c *websocket.Conn) {
	conn := &wsConn{conn: c}
	defer c.Close()

	chatId, _ := c.Locals("chatId").(string)

	var first model.ChatFrame
	if err := c.ReadJSON(&first); err != nil {
		log.Printf("WS chat: không đọc được khung join: %v", err)
		return
	}
	userId, err := joinRoom(first, chatId)
	if err != nil {
		log.Printf("WS chat: từ chối join: %v", err)
		_ = conn.writeFrame(model.ChatFrame{Event: model.ChatEventAck, AckID: first.AckID, Error: err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sub kênh Redis của user
	pubsub := database.Redis.Subscribe(ctx, chatChannel(userId))
	defer pubsub.Close()

	go func() {
		for msg := range pubsub.Channel() {
			if err := conn.writeRaw([]byte(msg.Payload)); err != nil {
				log.Printf("WS chat %s: lỗi ghi: %v", userId, err)
				cancel()
				return
			}
		}
	}()

	for {
		var frame model.ChatFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WS chat %s đóng bất thường: %v", userId, err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		if frame.Event != model.ChatEventSend {
			continue
		}

		var input model.SendMessageInput
		if err := json.Unmarshal(frame.Data, &input); err != nil {
			_ = conn.writeFrame(ackFrame(frame.AckID, nil, err))
			continue
		}
		if err := validate.SendMessageInput(input); err != nil {
			_ = conn.writeFrame(ackFrame(frame.AckID, nil, err))
			continue
		}

		msg, err := saveMessage(userId, input)
		if err != nil {
			log.Printf("WS chat %s: lưu tin nhắn thất bại: %v", userId, err)
			_ = conn.writeFrame(ackFrame(frame.AckID, nil, err))
			continue
		}
		if err := conn.writeFrame(ackFrame(frame.AckID, &msg, nil)); err != nil {
			return
		}
		publishMessage(ctx, msg)
	}
}
