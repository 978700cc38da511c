// Package email builds contact form notifications and hands them to a
// mail transport.
package email

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDispatchFailed wraps every transport failure surfaced by the Dispatcher.
	ErrDispatchFailed = errors.New("email: dispatch failed")
	// ErrInvalidMessage is returned by transports for messages missing required parts.
	ErrInvalidMessage = errors.New("email: invalid message")
)

// Message is a fully rendered email ready for delivery.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Validate checks the parts every transport needs.
func (m Message) Validate() error {
	switch {
	case m.From == "":
		return fmt.Errorf("%w: sender is required", ErrInvalidMessage)
	case m.To == "":
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	case m.Subject == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	case m.HTML == "" && m.Text == "":
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

// Transport delivers a message and returns the provider's message id.
type Transport interface {
	SendMessage(ctx context.Context, msg Message) (string, error)
}

// ContactEmailData holds the sanitized contact form fields
type ContactEmailData struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// Dispatcher renders contact notifications and sends them through a Transport.
// It never retries; a transport failure is terminal for that submission.
type Dispatcher struct {
	transport Transport
	from      string
	to        string
	now       func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithClock overrides the time source used for the send timestamp.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher creates a dispatcher sending from the given address to the recipient.
func NewDispatcher(transport Transport, from, to string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		from:      from,
		to:        to,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subject returns the notification subject for a submission.
func Subject(data ContactEmailData) string {
	return fmt.Sprintf("Portfolio Contact Form - Message from %s %s", data.FirstName, data.LastName)
}

// Build renders the message for data without sending it.
func (d *Dispatcher) Build(data ContactEmailData) (Message, error) {
	sentAt := d.now()

	html, err := renderHTML(data, sentAt)
	if err != nil {
		return Message{}, err
	}
	text, err := renderText(data, sentAt)
	if err != nil {
		return Message{}, err
	}

	return Message{
		From:    d.from,
		To:      d.to,
		ReplyTo: data.Email,
		Subject: Subject(data),
		HTML:    html,
		Text:    text,
	}, nil
}

// Send renders the notification for data and delivers it.
func (d *Dispatcher) Send(ctx context.Context, data ContactEmailData) (string, error) {
	msg, err := d.Build(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	id, err := d.transport.SendMessage(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	return id, nil
}
