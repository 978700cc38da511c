package email

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkTransport delivers messages through the Postmark API.
type PostmarkTransport struct {
	client *postmark.Client
}

func NewPostmarkTransport(serverToken, accountToken string) *PostmarkTransport {
	return &PostmarkTransport{client: postmark.NewClient(serverToken, accountToken)}
}

// SendMessage implements Transport.
func (t *PostmarkTransport) SendMessage(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	resp, err := t.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      "contact-form",
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("postmark request failed: %w", err)
	}
	if resp.ErrorCode > 0 {
		return "", fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
	}
	return resp.MessageID, nil
}
