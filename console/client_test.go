package console

import (
	"context"
	"net"
	"testing"
	"time"

	"cake_admin/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startAPI chạy một fiber app giả lập REST API trên cổng ngẫu nhiên
func startAPI(t *testing.T, setup func(app *fiber.App)) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	setup(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func newTestClient(t *testing.T, base string) *Client {
	s, err := NewSession(signedToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	return NewClient(base, s)
}

func TestClientBillRoundTrip(t *testing.T) {
	var gotAuth string
	var gotStatus model.UpdateBillStatusInput
	base := startAPI(t, func(app *fiber.App) {
		app.Get("/bills", func(c *fiber.Ctx) error {
			gotAuth = c.Get(fiber.HeaderAuthorization)
			return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
				"rows":       []fiber.Map{{"id": "b1", "status": "pending", "totalAmount": 250000}},
				"totalCount": 1,
			}})
		})
		app.Get("/bills/:id", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
				"bill":        fiber.Map{"id": c.Params("id"), "status": "ready"},
				"statusLabel": "Chờ giao hàng",
			}})
		})
		app.Put("/bills/:id", func(c *fiber.Ctx) error {
			if err := c.BodyParser(&gotStatus); err != nil {
				return err
			}
			return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"id": c.Params("id")}})
		})
		app.Delete("/bills/:id", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Chỉ được xóa đơn hàng đang xử lý hoặc đã hủy"})
		})
	})
	client := newTestClient(t, base)
	ctx := context.Background()

	bills, err := client.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "b1", bills[0].ID)
	assert.Equal(t, model.BillPending, bills[0].Status)
	assert.Equal(t, "Bearer "+client.session.Token, gotAuth)

	bill, err := client.GetBill(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, model.BillReady, bill.Status)

	require.NoError(t, client.UpdateBillStatus(ctx, "b1", model.BillConfirmed))
	assert.Equal(t, "confirmed", gotStatus.Status)

	err = client.DeleteBill(ctx, "b1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusConflict, apiErr.Status)
	assert.Equal(t, "Chỉ được xóa đơn hàng đang xử lý hoặc đã hủy", apiErr.Message)
}

func TestClientGenericErrorMessage(t *testing.T) {
	base := startAPI(t, func(app *fiber.App) {
		app.Get("/messages/conversations", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusBadGateway)
		})
	})
	_, err := newTestClient(t, base).FetchConversations(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, genericErrorMessage, apiErr.Message)
}

func TestClientMessages(t *testing.T) {
	var posted model.SendMessageInput
	base := startAPI(t, func(app *fiber.App) {
		app.Get("/messages/conversations", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"data": []model.ConversationSummary{{UserID: "u1", Email: "u1@banh.vn", LastMessage: "hi"}}})
		})
		app.Get("/messages/:userId", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"data": []model.ChatMessage{{ID: "m1", SenderID: c.Params("userId"), ReceiverID: "admin", Message: "hi"}}})
		})
		app.Post("/messages", func(c *fiber.Ctx) error {
			if err := c.BodyParser(&posted); err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": model.ChatMessage{
				ID: "m2", ClientID: posted.ClientID, SenderID: "admin", ReceiverID: posted.ReceiverID, Message: posted.Message,
			}})
		})
	})
	client := newTestClient(t, base)
	ctx := context.Background()

	convs, err := client.FetchConversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1@banh.vn", convs[0].Email)

	msgs, err := client.FetchMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", msgs[0].SenderID)

	saved, err := client.PostMessage(ctx, model.ChatMessage{ClientID: "c1", ReceiverID: "u1", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "m2", saved.ID)
	assert.Equal(t, "c1", saved.ClientID)
	assert.Equal(t, "hello", posted.Message)
}

func TestClientExpiredSession(t *testing.T) {
	s, err := NewSession(signedToken(t, time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	_, err = NewClient("http://127.0.0.1:1", s).ListBills(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}
