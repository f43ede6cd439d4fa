package mailer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
)

// ConsoleSender logs messages instead of delivering them. Default backend
// for development and tests.
type ConsoleSender struct {
	appName string
	from    string
	log     zerolog.Logger
}

// NewConsoleSender creates a ConsoleSender.
func NewConsoleSender(cfg *config.Config, log zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{
		appName: cfg.AppName,
		from:    cfg.DefaultFromEmail,
		log:     log.With().Str("component", "console_mailer").Logger(),
	}
}

// Send logs the message and always succeeds.
func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.log.Info().
		Str("from", s.from).
		Str("to", msg.To).
		Str("subject", "["+s.appName+"] "+msg.Subject).
		Str("body", msg.Body).
		Msg("Email (console backend)")
	return nil
}
