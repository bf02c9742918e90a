package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=mailer.go -destination=./mocks/mailer_mock.go -package=mocks Mailer

// Mailer доставляет одно письмо.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig - параметры подключения к SMTP-серверу.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPMailer отправляет письма через SMTP.
type SMTPMailer struct {
	cfg    SMTPConfig
	tracer trace.Tracer
}

// NewSMTPMailer создает SMTP-отправителя.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{cfg: cfg, tracer: otel.Tracer("smtp-mailer")}
}

// Send открывает соединение, отправляет письмо и закрывает соединение.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	ctx, span := m.tracer.Start(ctx, "SMTP.Send", trace.WithAttributes(
		attribute.String("mail.kind", msg.Kind),
		attribute.String("submission.id", msg.SubmissionID),
	))
	defer span.End()

	email, err := buildMessage(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("ошибка настройки SMTP-клиента: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, email); err != nil {
		return fmt.Errorf("ошибка отправки письма %s: %w", msg.Kind, err)
	}
	return nil
}

func buildMessage(msg Message) (*mail.Msg, error) {
	email := mail.NewMsg()
	if err := email.From(msg.From); err != nil {
		return nil, fmt.Errorf("некорректный отправитель %q: %w", msg.From, err)
	}
	if err := email.To(msg.To...); err != nil {
		return nil, fmt.Errorf("некорректный получатель: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := email.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("некорректный адрес для ответа: %w", err)
		}
	}
	email.Subject(msg.Subject)
	email.SetDate()
	email.SetMessageID()
	email.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return email, nil
}
