package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"cake_admin/model"

	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
)

var (
	ErrNotConnected = errors.New("realtime channel not connected")
	ErrAckTimeout   = errors.New("no acknowledgment from realtime channel")
)

// Channel là kênh realtime dùng chung cho cả màn chat
type Channel interface {
	Connected() bool
	Emit(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error)
	OnReceive(fn func(model.ChatMessage))
	Close() error
}

// WSChannel nói chuyện với server chat qua websocket
type WSChannel struct {
	conn   *websocket.Conn
	logger *log.Logger

	writeMu sync.Mutex

	mu        sync.Mutex
	pending   map[string]chan model.ChatFrame
	onReceive func(model.ChatMessage)

	connected atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

func DialChannel(ctx context.Context, wsURL string, session *Session, userID string, logger *log.Logger) (*WSChannel, error) {
	if logger == nil {
		logger = log.Default()
	}
	auth, err := session.authorization(time.Now())
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Authorization", auth)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("dial chat socket: %w", err)
	}

	ch := &WSChannel{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]chan model.ChatFrame),
		done:    make(chan struct{}),
	}

	join, _ := json.Marshal(model.JoinPayload{UserID: userID})
	if err := ch.write(model.ChatFrame{Event: model.ChatEventJoin, Data: join}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("join chat room: %w", err)
	}

	ch.connected.Store(true)
	go ch.readLoop()
	return ch, nil
}

func (ch *WSChannel) Connected() bool {
	return ch.connected.Load()
}

func (ch *WSChannel) OnReceive(fn func(model.ChatMessage)) {
	ch.mu.Lock()
	ch.onReceive = fn
	ch.mu.Unlock()
}

// Emit gửi sendMessage và chờ ack tương ứng cho tới khi ctx hết hạn
func (ch *WSChannel) Emit(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	if !ch.Connected() {
		return model.ChatMessage{}, ErrNotConnected
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return model.ChatMessage{}, err
	}

	ackID := uuid.NewString()
	wait := make(chan model.ChatFrame, 1)
	ch.mu.Lock()
	ch.pending[ackID] = wait
	ch.mu.Unlock()
	defer func() {
		ch.mu.Lock()
		delete(ch.pending, ackID)
		ch.mu.Unlock()
	}()

	if err := ch.write(model.ChatFrame{Event: model.ChatEventSend, AckID: ackID, Data: data}); err != nil {
		return model.ChatMessage{}, fmt.Errorf("emit sendMessage: %w", err)
	}

	select {
	case f := <-wait:
		if f.Error != "" {
			return model.ChatMessage{}, &APIError{Message: f.Error}
		}
		var ack model.SendAck
		if err := json.Unmarshal(f.Data, &ack); err != nil {
			return model.ChatMessage{}, fmt.Errorf("decode ack: %w", err)
		}
		return ack.Message, nil
	case <-ch.done:
		return model.ChatMessage{}, ErrNotConnected
	case <-ctx.Done():
		return model.ChatMessage{}, fmt.Errorf("%w: %w", ErrAckTimeout, ctx.Err())
	}
}

func (ch *WSChannel) Close() error {
	var err error
	ch.closeOnce.Do(func() {
		ch.connected.Store(false)
		ch.writeMu.Lock()
		_ = ch.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		ch.writeMu.Unlock()
		err = ch.conn.Close()
	})
	return err
}

func (ch *WSChannel) write(f model.ChatFrame) error {
	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()
	return ch.conn.WriteJSON(f)
}

func (ch *WSChannel) readLoop() {
	defer func() {
		ch.connected.Store(false)
		close(ch.done)
	}()

	for {
		var f model.ChatFrame
		if err := ch.conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ch.logger.Printf("Kênh chat bị ngắt: %v", err)
			}
			return
		}

		switch f.Event {
		case model.ChatEventReceive:
			var msg model.ChatMessage
			if err := json.Unmarshal(f.Data, &msg); err != nil {
				ch.logger.Printf("Bỏ qua tin nhắn lỗi định dạng: %v", err)
				continue
			}
			ch.mu.Lock()
			fn := ch.onReceive
			ch.mu.Unlock()
			if fn != nil {
				fn(msg)
			}
		case model.ChatEventAck:
			ch.mu.Lock()
			wait, ok := ch.pending[f.AckID]
			ch.mu.Unlock()
			if ok {
				select {
				case wait <- f:
				default:
				}
			}
		}
	}
}
