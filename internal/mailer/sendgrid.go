package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/nucampus/campus-backend/internal/config"
)

// SendgridSender delivers messages through the SendGrid API.
type SendgridSender struct {
	client  *sendgrid.Client
	appName string
	from    *sgmail.Email
	log     zerolog.Logger
}

// NewSendgridSender creates a SendgridSender.
func NewSendgridSender(cfg *config.Config, log zerolog.Logger) *SendgridSender {
	return &SendgridSender{
		client:  sendgrid.NewSendClient(cfg.SendgridAPIKey),
		appName: cfg.AppName,
		from:    sgmail.NewEmail(cfg.AppName, cfg.DefaultFromEmail),
		log:     log.With().Str("component", "sendgrid_mailer").Logger(),
	}
}

// Send delivers one message. Non-2xx API responses are returned as errors so
// the email worker can requeue.
func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	email := sgmail.NewSingleEmail(
		s.from,
		"["+s.appName+"] "+msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Body,
		"",
	)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	s.log.Debug().Str("to", msg.To).Msg("Email accepted by SendGrid")
	return nil
}
