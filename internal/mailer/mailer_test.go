package mailer

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
)

func TestConsoleSenderAlwaysSucceeds(t *testing.T) {
	sender := NewConsoleSender(&config.Config{
		AppName:          "Campus Backend",
		DefaultFromEmail: "no-reply@campus.local",
	}, zerolog.Nop())

	err := sender.Send(context.Background(), Message{
		To:      "rina@example.com",
		Subject: "Enrollment approved",
		Body:    "You are enrolled.",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	log := zerolog.Nop()

	if _, ok := New(&config.Config{EmailBackend: "console"}, log).(*ConsoleSender); !ok {
		t.Fatal("console backend should yield a ConsoleSender")
	}
	if _, ok := New(&config.Config{EmailBackend: "sendgrid", SendgridAPIKey: "SG.fake"}, log).(*SendgridSender); !ok {
		t.Fatal("sendgrid backend should yield a SendgridSender")
	}
	// Unknown backend falls back to console.
	if _, ok := New(&config.Config{EmailBackend: "smtp"}, log).(*ConsoleSender); !ok {
		t.Fatal("unknown backend should fall back to ConsoleSender")
	}
}
