package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/applyhub/applyhub/internal/config"
	"github.com/wneessen/go-mail"
)

var ErrMailerDisabled = errors.New("email sending is not configured")

// Message is one HTML email to a single applicant.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Delivery describes how a message was handed to the relay.
type Delivery struct {
	From     string
	CC       string
	Attempts int
}

// Sender delivers a message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) (Delivery, error)
}

type smtpServer struct {
	host string
	port int
}

// wellKnownServices maps EMAIL_SERVICE names to their SMTP submission
// endpoints.
var wellKnownServices = map[string]smtpServer{
	"gmail":     {host: "smtp.gmail.com", port: 465},
	"outlook":   {host: "smtp-mail.outlook.com", port: 587},
	"hotmail":   {host: "smtp-mail.outlook.com", port: 587},
	"office365": {host: "smtp.office365.com", port: 587},
	"yahoo":     {host: "smtp.mail.yahoo.com", port: 465},
	"zoho":      {host: "smtp.zoho.com", port: 465},
	"icloud":    {host: "smtp.mail.me.com", port: 587},
}

// Mailer sends email over SMTP with a fixed sender and optional CC.
type Mailer struct {
	cfg     config.MailConfig
	server  smtpServer
	backoff time.Duration
	logger  *slog.Logger
	deliver func(ctx context.Context, msg *mail.Msg) error
}

func NewMailer(cfg config.MailConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	m := &Mailer{
		cfg:     cfg,
		server:  resolveServer(cfg),
		backoff: time.Second,
		logger:  logger,
	}
	m.deliver = m.dial
	return m
}

func resolveServer(cfg config.MailConfig) smtpServer {
	server := wellKnownServices[strings.ToLower(strings.TrimSpace(cfg.Service))]
	if cfg.Host != "" {
		server.host = cfg.Host
	}
	if cfg.Port != 0 {
		server.port = cfg.Port
	}
	if server.port == 0 {
		server.port = 587
	}
	return server
}

// Enabled reports whether the mailer has a relay and a sender address.
func (m *Mailer) Enabled() bool {
	return m.server.host != "" && m.cfg.Address != ""
}

// Send builds the message and attempts delivery up to MaxAttempts times
// with a linear backoff. Each attempt is bounded by the configured timeout.
func (m *Mailer) Send(ctx context.Context, msg Message) (Delivery, error) {
	delivery := Delivery{From: m.cfg.Address, CC: m.cfg.CC}
	if !m.Enabled() {
		return delivery, ErrMailerDisabled
	}

	built, err := m.build(msg)
	if err != nil {
		return delivery, err
	}

	var lastErr error
	for attempt := 1; attempt <= m.cfg.MaxAttempts; attempt++ {
		delivery.Attempts = attempt

		attemptCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
		lastErr = m.deliver(attemptCtx, built)
		cancel()

		if lastErr == nil {
			m.logger.Info("email sent", "to", msg.To, "subject", msg.Subject, "attempts", attempt)
			return delivery, nil
		}

		m.logger.Warn("email send failed", "to", msg.To, "attempt", attempt, "error", lastErr)

		if attempt == m.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return delivery, ctx.Err()
		case <-time.After(time.Duration(attempt) * m.backoff):
		}
	}

	return delivery, fmt.Errorf("send email to %s: %w", msg.To, lastErr)
}

func (m *Mailer) build(msg Message) (*mail.Msg, error) {
	built := mail.NewMsg()
	if err := built.From(m.cfg.Address); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := built.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if m.cfg.CC != "" {
		if err := built.Cc(m.cfg.CC); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}
	built.Subject(msg.Subject)
	built.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return built, nil
}

func (m *Mailer) dial(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{mail.WithTimeout(m.cfg.Timeout)}
	if m.server.port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	// The port goes last so the TLS options above cannot reset it.
	opts = append(opts, mail.WithPort(m.server.port))
	if m.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Address),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.server.host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
