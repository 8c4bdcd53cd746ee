package email

import (
	"context"
	"net/mail"
	"testing"

	"github.com/campusboard/backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestConsoleSender(t *testing.T) {
	s := NewConsoleSender(logger.NewLogger(logger.SILENCE))
	err := s.Send(context.Background(), &Message{
		To:          mail.Address{Name: "Alice", Address: "alice@kaist.ac.kr"},
		Subject:     "Verify your email",
		TextContent: "token",
	})
	require.NoError(t, err)
}
