package notify

//go:generate mockgen -source=sender.go -destination=mock_sender.go -package=notify

import (
	"context"
	"fmt"

	"tradesupport/internal/app/config"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// Sender доставляет html письмо одному получателю
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender отправка через SMTP сервер
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender используется когда SMTP не настроен
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, _ string) error {
	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("email not sent, smtp is disabled")
	return nil
}

// NewSender выбирает реализацию по конфигурации
func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}
