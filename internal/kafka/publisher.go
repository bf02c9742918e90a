package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"lcl_quote/internal/config"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"
	"lcl_quote/internal/notify"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Publisher ставит письма по заявке в очередь вместо прямой отправки.
// Доставкой занимается Consumer.
type Publisher struct {
	writer   messageWriter
	renderer *notify.Renderer
	tracer   trace.Tracer
}

// NewPublisher создает продюсера писем в топик cfg.Topic.
func NewPublisher(cfg config.KafkaConfig, renderer *notify.Renderer) *Publisher {
	return &Publisher{
		writer:   newWriter(cfg.Brokers, cfg.Topic),
		renderer: renderer,
		tracer:   otel.Tracer("kafka-publisher"),
	}
}

// Notify собирает оба письма и публикует их одним пакетом.
func (p *Publisher) Notify(ctx context.Context, sub model.Submission) error {
	ctx, span := p.tracer.Start(ctx, "Publisher.Notify")
	defer span.End()

	messages, err := p.renderer.Render(sub)
	if err != nil {
		return err
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		value, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("ошибка сериализации письма: %w", err)
		}
		batch = append(batch, kafka.Message{
			Key:   []byte(sub.ID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "X-Mail-Kind", Value: []byte(msg.Kind)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("ошибка публикации писем в Kafka: %w", err)
	}

	metrics.KafkaMessagesProcessed.WithLabelValues("published").Add(float64(len(batch)))
	log.WithField("submission", sub.ID).Infof("Поставлено в очередь писем: %d", len(batch))
	return nil
}

// Close закрывает продюсера.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
