package mail

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/slog"
	"gopkg.in/gomail.v2"
)

const (
	SecureStartTLS = "starttls"
	SecureSSL      = "ssl"
	SecureNone     = "none"

	defaultTimeout = 30 * time.Second
)

type SMTPInfo struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Secure   string
	Timeout  time.Duration
	// Debug logs every send attempt and the full error of failed ones
	Debug bool
}

// Dialer is the part of gomail.Dialer that is used for sending.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Delivery is one email with the rendered plan attached.
type Delivery struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

type SMTP struct {
	info   SMTPInfo
	dialer Dialer
	logger *slog.Logger
}

func NewSMTP(info SMTPInfo, logger *slog.Logger) *SMTP {
	d := gomail.NewDialer(info.Host, info.Port, info.Username, info.Password)
	// gomail upgrades with STARTTLS whenever the server offers it, so
	// starttls and none only differ on servers that do not
	d.SSL = info.Secure == SecureSSL
	return NewSMTPWithDialer(info, d, logger)
}

func NewSMTPWithDialer(info SMTPInfo, dialer Dialer, logger *slog.Logger) *SMTP {
	if info.FromName == "" {
		info.FromName = "Learning Path Bot"
	}
	if info.Timeout <= 0 {
		info.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SMTP{
		info:   info,
		dialer: dialer,
		logger: logger,
	}
}

func (s *SMTP) Message(d Delivery) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.info.From, s.info.FromName)
	m.SetHeader("To", d.To)
	m.SetHeader("Subject", d.Subject)
	m.SetBody("text/plain", d.Body)
	m.Attach(d.AttachmentPath,
		gomail.Rename(filepath.Base(d.AttachmentPath)),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	return m
}

// Send mails the delivery. The attachment must already be on disk. Sending
// gives up after the configured timeout.
func (s *SMTP) Send(ctx context.Context, d Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(d.AttachmentPath); err != nil {
		return fmt.Errorf("attachment not available: %w", err)
	}
	if s.info.Debug {
		s.logger.Info("sending email",
			slog.String("host", s.info.Host),
			slog.Int("port", s.info.Port),
			slog.String("secure", s.info.Secure),
			slog.String("to", d.To),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, s.info.Timeout)
	defer cancel()
	msg := s.Message(d)
	res := make(chan error, 1)
	go func() {
		res <- s.dialer.DialAndSend(msg)
	}()

	var err error
	select {
	case err = <-res:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		if s.info.Debug {
			s.logger.Error("email send failed", slog.String("to", d.To), slog.String("error", fmt.Sprintf("%+v", err)))
		}
		return fmt.Errorf("failed to send email to %s: %w", d.To, err)
	}

	return nil
}
