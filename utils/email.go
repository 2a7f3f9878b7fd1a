package utils

import (
	"bytes"
	"cake_admin/config"
	"cake_admin/model"
	"fmt"
	"html/template"
	"io"
	"log"

	"gopkg.in/gomail.v2"
)

// BillStatusMailData dữ liệu cho email báo trạng thái đơn
type BillStatusMailData struct {
	BillID      string
	StatusLabel string
	TotalAmount float64
	Items       []model.BillItem
}

var billStatusTmpl = template.Must(template.New("bill_status").Parse(`<html><body>
<h2>Đơn hàng {{.BillID}}</h2>
<p>Trạng thái mới: <b>{{.StatusLabel}}</b></p>
<table>
{{range .Items}}<tr><td>{{if .Product}}{{.Product.Name}}{{else}}#{{.ProductID}}{{end}}</td><td>x{{.Quantity}}</td><td>{{printf "%.0f" .UnitPrice}}đ</td></tr>
{{end}}</table>
<p>Tổng tiền: {{printf "%.0f" .TotalAmount}}đ</p>
<img src="cid:bill_qr" alt="QR"/>
</body></html>`))

func renderBillStatusMail(data BillStatusMailData) (string, error) {
	var body bytes.Buffer
	if err := billStatusTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// SendBillStatusEmail gửi email báo trạng thái đơn cho khách (async)
func SendBillStatusEmail(to string, bill model.Bill) {
	if to == "" {
		return
	}
	go func() {
		html, err := renderBillStatusMail(BillStatusMailData{
			BillID:      bill.ID,
			StatusLabel: GetBillStatusLabel(bill.Status),
			TotalAmount: bill.TotalAmount,
			Items:       bill.Items,
		})
		if err != nil {
			log.Printf("Lỗi render email đơn %s: %v", bill.ID, err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", config.ConfigDefault("SMTP_FROM", "Tiệm Bánh <no-reply@tiembanh.vn>"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Đơn hàng %s: %s", bill.ID, GetBillStatusLabel(bill.Status)))
		m.SetBody("text/html", html)

		if qrBytes, err := GenerateQRCode(bill.ID, 300); err == nil {
			m.Embed("bill_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrBytes)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<bill_qr>"},
				"Content-Disposition": {"inline"},
			}))
		}

		d := gomail.NewDialer(
			config.Config("SMTP_HOST"),
			config.ConfigInt("SMTP_PORT", 587),
			config.Config("SMTP_USERNAME"),
			config.Config("SMTP_PASSWORD"),
		)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email đơn %s cho %s: %v", bill.ID, to, err)
		}
	}()
}
