package email

import (
	"context"
	"net/mail"
)

type Message struct {
	To          mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
