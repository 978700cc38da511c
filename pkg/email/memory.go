package email

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryTransport records messages instead of sending them. It is the test
// double for the network transports and backs MAIL_PROVIDER=memory.
type MemoryTransport struct {
	mu       sync.Mutex
	messages []Message
	err      error
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// FailWith makes subsequent sends return err; nil restores normal behavior.
func (t *MemoryTransport) FailWith(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
}

// SendMessage implements Transport.
func (t *MemoryTransport) SendMessage(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return "", t.err
	}
	t.messages = append(t.messages, msg)
	return "memory-" + uuid.NewString(), nil
}

// Messages returns a copy of every recorded message.
func (t *MemoryTransport) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
