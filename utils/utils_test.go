package utils

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"cake_admin/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBillStatusLabel(t *testing.T) {
	assert.Equal(t, "Đang xử lý", GetBillStatusLabel(model.BillPending))
	assert.Equal(t, "Chờ giao hàng", GetBillStatusLabel(model.BillReady))
	assert.Equal(t, "Không xác định", GetBillStatusLabel("shipped"))

	// every label parses back to its status
	for _, s := range model.BillStatuses() {
		got, err := model.ParseBillStatus(GetBillStatusLabel(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestGenerateQRCode(t *testing.T) {
	b, err := GenerateQRCode("b1", 200)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	url, err := QRCodeDataURL("b1", 100)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestRenderBillStatusMail(t *testing.T) {
	html, err := renderBillStatusMail(BillStatusMailData{
		BillID:      "b1",
		StatusLabel: GetBillStatusLabel(model.BillConfirmed),
		TotalAmount: 250000,
		Items: []model.BillItem{
			{ProductID: 3, Quantity: 2, UnitPrice: 125000, Product: &model.Product{Name: "Bánh kem dâu"}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Đã xác nhận")
	assert.Contains(t, html, "Bánh kem dâu")
	assert.Contains(t, html, "250000đ")
}
