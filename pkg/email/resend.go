package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendTransport delivers messages through the Resend API.
type ResendTransport struct {
	client *resend.Client
}

func NewResendTransport(apiKey string) *ResendTransport {
	return &ResendTransport{client: resend.NewClient(apiKey)}
}

// SendMessage implements Transport.
func (t *ResendTransport) SendMessage(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	sent, err := t.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend request failed: %w", err)
	}
	return sent.Id, nil
}
