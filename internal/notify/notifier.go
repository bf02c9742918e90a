package notify

import (
	"context"
	"errors"
	"fmt"
	"lcl_quote/internal/model"

	log "github.com/sirupsen/logrus"
)

// EmailNotifier сразу отправляет оба письма по заявке.
type EmailNotifier struct {
	renderer *Renderer
	mailer   Mailer
}

// NewEmailNotifier создает уведомитель с прямой отправкой.
func NewEmailNotifier(renderer *Renderer, mailer Mailer) *EmailNotifier {
	return &EmailNotifier{renderer: renderer, mailer: mailer}
}

// Notify отправляет письмо клиенту и в операционный ящик.
// Ошибка одного письма не мешает отправке второго.
func (n *EmailNotifier) Notify(ctx context.Context, sub model.Submission) error {
	messages, err := n.renderer.Render(sub)
	if err != nil {
		return err
	}

	var errs []error
	for _, msg := range messages {
		if err := n.mailer.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("письмо %s: %w", msg.Kind, err))
			continue
		}
		log.WithFields(log.Fields{"submission": sub.ID, "kind": msg.Kind}).Info("Письмо отправлено")
	}
	return errors.Join(errs...)
}
