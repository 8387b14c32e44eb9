package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient implements EmailClient
type SendGridClient struct {
	apiKey string
}

func NewSendGridClient(apiKey string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey}
}

func (c *SendGridClient) Send(ctx context.Context, msg Message) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if msg.From == "" {
		return fmt.Errorf("from address is empty")
	}
	if msg.To == "" {
		return fmt.Errorf("to address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(msg.FromName, msg.From),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Text,
		msg.HTML,
	)

	client := sendgrid.NewSendClient(c.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	return nil
}
