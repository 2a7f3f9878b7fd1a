package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cake_admin/model"

	"github.com/gofiber/fiber/v2"
)

const genericErrorMessage = "Đã có lỗi xảy ra, vui lòng thử lại"

// APIError là lỗi do backend trả về, Message dùng để hiển thị cho admin
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client gọi REST API của trang quản trị bằng fiber Agent
type Client struct {
	baseURL string
	session *Session
	http    *fiber.Client
	timeout time.Duration
	now     func() time.Time
}

func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &fiber.Client{},
		timeout: 10 * time.Second,
		now:     time.Now,
	}
}

func (c *Client) ListBills(ctx context.Context) ([]model.Bill, error) {
	var page struct {
		Rows []model.Bill `json:"rows"`
	}
	if err := c.do(ctx, fiber.MethodGet, "/bills", nil, &page); err != nil {
		return nil, err
	}
	return page.Rows, nil
}

func (c *Client) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	var detail struct {
		Bill model.Bill `json:"bill"`
	}
	if err := c.do(ctx, fiber.MethodGet, "/bills/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail.Bill, nil
}

func (c *Client) UpdateBillStatus(ctx context.Context, id string, status model.BillStatus) error {
	body := model.UpdateBillStatusInput{Status: string(status)}
	return c.do(ctx, fiber.MethodPut, "/bills/"+url.PathEscape(id), body, nil)
}

func (c *Client) DeleteBill(ctx context.Context, id string) error {
	return c.do(ctx, fiber.MethodDelete, "/bills/"+url.PathEscape(id), nil, nil)
}

func (c *Client) FetchMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	if err := c.do(ctx, fiber.MethodGet, "/messages/"+url.PathEscape(userID), nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) FetchConversations(ctx context.Context) ([]model.ConversationSummary, error) {
	var list []model.ConversationSummary
	if err := c.do(ctx, fiber.MethodGet, "/messages/conversations", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) PostMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	input := model.SendMessageInput{
		ClientID:   msg.ClientID,
		ReceiverID: msg.ReceiverID,
		Message:    msg.Message,
		ImageURL:   msg.ImageURL,
	}
	var saved model.ChatMessage
	if err := c.do(ctx, fiber.MethodPost, "/messages", input, &saved); err != nil {
		return model.ChatMessage{}, err
	}
	return saved, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth, err := c.session.authorization(c.now())
	if err != nil {
		return err
	}

	var a *fiber.Agent
	target := c.baseURL + path
	switch method {
	case fiber.MethodGet:
		a = c.http.Get(target)
	case fiber.MethodPost:
		a = c.http.Post(target)
	case fiber.MethodPut:
		a = c.http.Put(target)
	case fiber.MethodDelete:
		a = c.http.Delete(target)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}

	a.Set(fiber.HeaderAuthorization, auth)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if in != nil {
		a.JSON(in)
	}
	a.Timeout(c.requestTimeout(ctx))

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}

	var env envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil && code < 300 {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	if code >= 300 {
		msg := env.Message
		if msg == "" {
			msg = genericErrorMessage
		}
		return &APIError{Status: code, Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < c.timeout {
			return d
		}
	}
	return c.timeout
}
