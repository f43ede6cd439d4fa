package mailer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// EmailSender is the delivery boundary. The application never talks to an
// SMTP/API provider directly; workers hand messages to this interface.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// New selects the configured backend: "sendgrid" when an API key is set,
// otherwise the console sender used in development.
func New(cfg *config.Config, log zerolog.Logger) EmailSender {
	if cfg.EmailBackend == "sendgrid" && cfg.SendgridAPIKey != "" {
		return NewSendgridSender(cfg, log)
	}
	return NewConsoleSender(cfg, log)
}
