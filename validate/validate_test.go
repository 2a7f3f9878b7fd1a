package validate

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"cake_admin/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Put("/bills/:id", BillId("id"), UpdateBillStatus(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("billId").(string) + ":" + string(c.Locals("targetStatus").(model.BillStatus)))
	})
	return app
}

func put(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPut, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

const billID = "5b0e8e0c-2f0a-4a57-9c37-0d4b8f3f6a11"

func TestUpdateBillStatusAcceptsCanonicalAndLegacy(t *testing.T) {
	app := statusApp(t)

	code, body := put(t, app, "/bills/"+billID, `{"status":"cancelled"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, billID+":cancelled", body)

	code, body = put(t, app, "/bills/"+billID, `{"status":"Đã xác nhận"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, billID+":confirmed", body)
}

func TestUpdateBillStatusRejects(t *testing.T) {
	app := statusApp(t)

	code, _ := put(t, app, "/bills/"+billID, `{"status":"shipped"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = put(t, app, "/bills/"+billID, `{}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = put(t, app, "/bills/not-a-uuid", `{"status":"ready"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestSendMessageInput(t *testing.T) {
	assert.NoError(t, SendMessageInput(model.SendMessageInput{ReceiverID: "u1", Message: "hi"}))
	assert.NoError(t, SendMessageInput(model.SendMessageInput{ReceiverID: "u1", ImageURL: "https://res.cloudinary.com/x.png"}))
	assert.Error(t, SendMessageInput(model.SendMessageInput{ReceiverID: "u1"}))
	assert.Error(t, SendMessageInput(model.SendMessageInput{Message: "hi"}))
	assert.Error(t, SendMessageInput(model.SendMessageInput{ReceiverID: "u1", Message: "hi", ImageURL: "https://res.cloudinary.com/x.png"}))
}

func TestCreateVoucherRejectsOversizedPercentage(t *testing.T) {
	app := fiber.New()
	app.Post("/vouchers", CreateVoucher(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("createInput").(model.CreateVoucherInput).Code)
	})

	send := func(body string) (int, string) {
		req := httptest.NewRequest(fiber.MethodPost, "/vouchers", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	code, body := send(`{"code":" sinhnhat ","discountType":"percentage","discountValue":10,"startDate":"2026-01-01T00:00:00Z","expiresAt":"2026-02-01T00:00:00Z"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "SINHNHAT", body)

	code, _ = send(`{"code":"X","discountType":"percentage","discountValue":150,"startDate":"2026-01-01T00:00:00Z","expiresAt":"2026-02-01T00:00:00Z"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = send(`{"code":"X","discountType":"fixed","discountValue":10,"startDate":"2026-02-01T00:00:00Z","expiresAt":"2026-01-01T00:00:00Z"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
