package console

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"cake_admin/model"

	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer là server chat giả: ghi lại khung join rồi trả lời theo nội dung tin nhắn
type chatServer struct {
	joined chan model.ChatFrame
	auth   chan string
}

func (s *chatServer) handle(c *fiberws.Conn) {
	defer c.Close()

	var join model.ChatFrame
	if err := c.ReadJSON(&join); err != nil {
		return
	}
	s.auth <- c.Locals("auth").(string)
	s.joined <- join

	for {
		var f model.ChatFrame
		if err := c.ReadJSON(&f); err != nil {
			return
		}
		var in model.ChatMessage
		if err := json.Unmarshal(f.Data, &in); err != nil {
			return
		}

		switch in.Message {
		case "drop":
			return
		case "silent":
			continue
		case "boom":
			_ = c.WriteJSON(model.ChatFrame{Event: model.ChatEventAck, AckID: f.AckID, Error: "Gửi tin nhắn thất bại"})
			continue
		}

		saved := in
		saved.ID = "m-" + in.Message
		if in.Message == "push" {
			data, _ := json.Marshal(model.ChatMessage{ID: "m7", SenderID: in.ReceiverID, ReceiverID: in.SenderID, Message: "đã nhận"})
			_ = c.WriteJSON(model.ChatFrame{Event: model.ChatEventReceive, Data: data})
		}
		// ack lạ trước, ack đúng sau
		_ = c.WriteJSON(model.ChatFrame{Event: model.ChatEventAck, AckID: "other"})
		data, _ := json.Marshal(model.SendAck{Message: saved})
		_ = c.WriteJSON(model.ChatFrame{Event: model.ChatEventAck, AckID: f.AckID, Data: data})
	}
}

func dialTestChannel(t *testing.T) (*WSChannel, *chatServer, *Session) {
	t.Helper()
	srv := &chatServer{joined: make(chan model.ChatFrame, 1), auth: make(chan string, 1)}
	base := startAPI(t, func(app *fiber.App) {
		app.Get("/chat/ws", func(c *fiber.Ctx) error {
			if !fiberws.IsWebSocketUpgrade(c) {
				return fiber.ErrUpgradeRequired
			}
			c.Locals("auth", c.Get(fiber.HeaderAuthorization))
			return c.Next()
		}, fiberws.New(srv.handle))
	})

	s, err := NewSession(signedToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	ch, err := DialChannel(context.Background(), "ws"+strings.TrimPrefix(base, "http")+"/chat/ws", s, s.ChatID, quietLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch, srv, s
}

func outgoing(text string) model.ChatMessage {
	return model.ChatMessage{ClientID: "c-" + text, SenderID: "admin-chat", ReceiverID: "u1", Message: text}
}

func TestDialChannelJoinsWithSession(t *testing.T) {
	ch, srv, s := dialTestChannel(t)

	assert.Equal(t, "Bearer "+s.Token, <-srv.auth)
	join := <-srv.joined
	assert.Equal(t, model.ChatEventJoin, join.Event)
	var payload model.JoinPayload
	require.NoError(t, json.Unmarshal(join.Data, &payload))
	assert.Equal(t, "admin-chat", payload.UserID)
	assert.True(t, ch.Connected())
}

func TestEmitMatchesAckByID(t *testing.T) {
	ch, _, _ := dialTestChannel(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	saved, err := ch.Emit(ctx, outgoing("hello"))
	require.NoError(t, err)
	assert.Equal(t, "m-hello", saved.ID)
	assert.Equal(t, "c-hello", saved.ClientID)

	saved, err = ch.Emit(ctx, outgoing("again"))
	require.NoError(t, err)
	assert.Equal(t, "m-again", saved.ID)
}

func TestEmitAckErrorBecomesAPIError(t *testing.T) {
	ch, _, _ := dialTestChannel(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := ch.Emit(ctx, outgoing("boom"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Gửi tin nhắn thất bại", apiErr.Message)
	assert.True(t, ch.Connected())
}

func TestReadLoopDispatchesPush(t *testing.T) {
	ch, _, _ := dialTestChannel(t)
	got := make(chan model.ChatMessage, 1)
	ch.OnReceive(func(m model.ChatMessage) { got <- m })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ch.Emit(ctx, outgoing("push"))
	require.NoError(t, err)

	select {
	case m := <-got:
		assert.Equal(t, "m7", m.ID)
		assert.Equal(t, "đã nhận", m.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("push was not dispatched")
	}
}

func TestEmitWithoutAckTimesOut(t *testing.T) {
	ch, _, _ := dialTestChannel(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ch.Emit(ctx, outgoing("silent"))

	assert.ErrorIs(t, err, ErrAckTimeout)
	assert.True(t, ch.Connected())
}

func TestEmitAfterConnectionDrop(t *testing.T) {
	ch, _, _ := dialTestChannel(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := ch.Emit(ctx, outgoing("drop"))
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Eventually(t, func() bool { return !ch.Connected() }, time.Second, 5*time.Millisecond)

	_, err = ch.Emit(ctx, outgoing("hello"))
	assert.ErrorIs(t, err, ErrNotConnected)
}
