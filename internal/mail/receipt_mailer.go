package mail

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"storefront/internal/domain/model"
)

const receiptText = `{{.Order.Customer.Name}} 様

ご注文ありがとうございます。

注文番号: {{.Order.ID}}
{{range .Order.Items}}
- {{.Name}} x {{.Quantity}}  {{.Subtotal.StringFixed 2}}
{{- end}}

合計: {{.Order.Total.StringFixed 2}}
{{if .ReceiptURL}}
領収書: {{.ReceiptURL}}
{{end}}
-- 
{{.StoreName}}
`

const receiptHTML = `<!doctype html>
<html>
<body style="font-family:sans-serif">
<p>{{.Order.Customer.Name}} 様</p>
<p>ご注文ありがとうございます。</p>
<p>注文番号: <strong>{{.Order.ID}}</strong></p>
<table cellpadding="4">
{{range .Order.Items}}<tr><td>{{.Name}}</td><td>x {{.Quantity}}</td><td align="right">{{.Subtotal.StringFixed 2}}</td></tr>
{{end}}<tr><td colspan="2"><strong>合計</strong></td><td align="right"><strong>{{.Order.Total.StringFixed 2}}</strong></td></tr>
</table>
{{if .ReceiptURL}}<p><a href="{{.ReceiptURL}}">領収書を表示</a></p>{{end}}
<p>{{.StoreName}}</p>
</body>
</html>
`

var (
	receiptTextTmpl = texttemplate.Must(texttemplate.New("receipt.txt").Parse(receiptText))
	receiptHTMLTmpl = htmltemplate.Must(htmltemplate.New("receipt.html").Parse(receiptHTML))
)

type receiptData struct {
	Order      model.Order
	ReceiptURL string
	StoreName  string
}

// ReceiptMailer は注文の領収書メールを組み立てて送る。
type ReceiptMailer struct {
	client    EmailClient
	from      string
	storeName string
}

func NewReceiptMailer(client EmailClient, from, storeName string) *ReceiptMailer {
	return &ReceiptMailer{
		client:    client,
		from:      strings.TrimSpace(from),
		storeName: storeName,
	}
}

func (m *ReceiptMailer) SendReceipt(ctx context.Context, to string, order model.Order, receiptURL string) error {
	msg, err := m.Build(to, order, receiptURL)
	if err != nil {
		return err
	}
	return m.client.Send(ctx, msg)
}

// Build は送信せずにメールを組み立てる。
func (m *ReceiptMailer) Build(to string, order model.Order, receiptURL string) (Message, error) {
	data := receiptData{
		Order:      order,
		ReceiptURL: strings.TrimSpace(receiptURL),
		StoreName:  m.storeName,
	}

	var text, html bytes.Buffer
	if err := receiptTextTmpl.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := receiptHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, err
	}

	subject := "【" + m.storeName + "】ご注文ありがとうございます"
	if order.ID != "" {
		subject += "（注文番号: " + order.ID + "）"
	}

	return Message{
		FromName: m.storeName,
		From:     m.from,
		To:       strings.TrimSpace(to),
		Subject:  subject,
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}
