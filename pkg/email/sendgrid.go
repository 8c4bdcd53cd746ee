package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campusboard/backend/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendgridSender(cfg config.EmailConfigs) *sendgridSender {
	return &sendgridSender{
		key:        cfg.SendgridAPIKey,
		from:       sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		subjPrefix: "[" + cfg.FromName + "] ",
	}
}

func (s *sendgridSender) Send(_ context.Context, msg *Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	if msg.HTMLContent != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	resp, err := sendgrid.API(req)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
