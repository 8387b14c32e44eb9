package mail

import "context"

// 送信するメール1通
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	Text     string
	HTML     string
}

// EmailClient は実際のメール送信クライアント（SendGridなど）を抽象化したもの。
type EmailClient interface {
	Send(ctx context.Context, msg Message) error
}
