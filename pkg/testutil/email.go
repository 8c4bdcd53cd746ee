package testutil

import (
	"context"

	"github.com/campusboard/backend/pkg/email"
)

// MockEmailSender keeps sent messages in memory.
type MockEmailSender struct {
	SendFunc func(context.Context, *email.Message) error
	Messages []*email.Message
}

func (m *MockEmailSender) Send(ctx context.Context, msg *email.Message) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}

	m.Messages = append(m.Messages, msg)
	return nil
}
