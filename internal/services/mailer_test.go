package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/applyhub/applyhub/internal/config"
	"github.com/wneessen/go-mail"
)

func TestResolveServer(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.MailConfig
		want smtpServer
	}{
		{"gmail", config.MailConfig{Service: "Gmail"}, smtpServer{host: "smtp.gmail.com", port: 465}},
		{"override host", config.MailConfig{Service: "gmail", Host: "relay.local"}, smtpServer{host: "relay.local", port: 465}},
		{"custom", config.MailConfig{Host: "mail.example.org", Port: 2525}, smtpServer{host: "mail.example.org", port: 2525}},
		{"default port", config.MailConfig{Host: "mail.example.org"}, smtpServer{host: "mail.example.org", port: 587}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveServer(tc.cfg); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestMailerDisabledWithoutSender(t *testing.T) {
	mailer := NewMailer(config.MailConfig{Service: "gmail"}, nil)
	if mailer.Enabled() {
		t.Fatalf("mailer without an address must be disabled")
	}
	if _, err := mailer.Send(context.Background(), Message{To: "a@example.org"}); !errors.Is(err, ErrMailerDisabled) {
		t.Fatalf("expected ErrMailerDisabled, got %v", err)
	}
}

func TestMailerRetriesUpToMaxAttempts(t *testing.T) {
	mailer := NewMailer(config.MailConfig{
		Service:     "gmail",
		Address:     "noreply@example.org",
		CC:          "records@example.org",
		MaxAttempts: 3,
		Timeout:     time.Second,
	}, nil)
	mailer.backoff = 0

	calls := 0
	var delivered *mail.Msg
	mailer.deliver = func(ctx context.Context, msg *mail.Msg) error {
		calls++
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("expected per-attempt deadline")
		}
		if calls < 3 {
			return errors.New("temporary failure")
		}
		delivered = msg
		return nil
	}

	delivery, err := mailer.Send(context.Background(), Message{To: "aline@example.org", Subject: "Hello", HTML: "<p>Hi</p>"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if delivery.Attempts != 3 || calls != 3 {
		t.Fatalf("expected 3 attempts, got %d (calls %d)", delivery.Attempts, calls)
	}
	if delivery.CC != "records@example.org" || delivery.From != "noreply@example.org" {
		t.Fatalf("unexpected delivery %+v", delivery)
	}
	if got := delivered.GetToString(); len(got) != 1 || !strings.Contains(got[0], "aline@example.org") {
		t.Fatalf("unexpected recipients %v", got)
	}
	if got := delivered.GetCcString(); len(got) != 1 {
		t.Fatalf("expected cc recipient, got %v", got)
	}
}

func TestMailerGivesUpAfterMaxAttempts(t *testing.T) {
	mailer := NewMailer(config.MailConfig{Host: "relay.local", Address: "noreply@example.org", MaxAttempts: 2}, nil)
	mailer.backoff = 0
	calls := 0
	mailer.deliver = func(ctx context.Context, msg *mail.Msg) error {
		calls++
		return errors.New("relay down")
	}

	delivery, err := mailer.Send(context.Background(), Message{To: "aline@example.org", Subject: "Hello", HTML: "<p>Hi</p>"})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if calls != 2 || delivery.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestMailerRejectsBadRecipient(t *testing.T) {
	mailer := NewMailer(config.MailConfig{Host: "relay.local", Address: "noreply@example.org"}, nil)
	mailer.deliver = func(ctx context.Context, msg *mail.Msg) error {
		t.Fatalf("must not deliver")
		return nil
	}
	if _, err := mailer.Send(context.Background(), Message{To: "not an address"}); err == nil {
		t.Fatalf("expected invalid recipient error")
	}
}
