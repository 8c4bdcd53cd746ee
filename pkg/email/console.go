package email

import (
	"context"

	"github.com/campusboard/backend/pkg/logger"
)

// consoleSender writes messages to the log. It is used when no sendgrid key
// is configured.
type consoleSender struct {
	logger logger.Logger
}

func NewConsoleSender(l logger.Logger) *consoleSender {
	return &consoleSender{logger: l}
}

func (s *consoleSender) Send(_ context.Context, msg *Message) error {
	s.logger.Infof("Email to %s | %s\n%s", msg.To.String(), msg.Subject, msg.TextContent)
	return nil
}
