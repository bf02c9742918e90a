package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"lcl_quote/internal/config"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/notify"
	"lcl_quote/internal/validator"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Consumer читает письма из очереди и отправляет их через Mailer.
type Consumer struct {
	reader     messageReader
	dlqWriter  messageWriter // Продюсер для отправки "битых" сообщений в DLQ
	mailer     notify.Mailer
	tracer     trace.Tracer
	maxRetries int                         // Количество попыток отправки письма
	backoff    func(attempt int) time.Duration
}

// NewConsumer создает новый экземпляр Consumer.
func NewConsumer(cfg config.KafkaConfig, mailer notify.Mailer) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
		// Коммиты выполняются вручную после обработки.
	})

	return &Consumer{
		reader:     reader,
		dlqWriter:  newWriter(cfg.Brokers, cfg.DLQTopic),
		mailer:     mailer,
		tracer:     otel.Tracer("kafka-consumer"),
		maxRetries: 3,
		backoff: func(attempt int) time.Duration {
			return time.Second * time.Duration(attempt) // Простой backoff
		},
	}
}

// Run запускает цикл чтения сообщений из Kafka.
func (c *Consumer) Run(ctx context.Context) {
	log.Println("Kafka-консюмер писем запущен...")
	defer func() {
		if err := c.reader.Close(); err != nil {
			log.Errorf("Ошибка закрытия Kafka-ридера: %v", err)
		}
		if err := c.dlqWriter.Close(); err != nil {
			log.Errorf("Ошибка закрытия Kafka (DLQ) writer: %v", err)
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Kafka-консюмер останавливается.")
				return
			}
			log.Errorf("Ошибка чтения сообщения из Kafka: %v", err)
			continue
		}

		if err := c.processMessage(ctx, msg); err != nil {
			// Не коммитим, Kafka доставит сообщение повторно.
			log.Warnf("Ошибка обработки сообщения (заявка %s): %v. Не коммитим, ждем retry.", string(msg.Key), err)
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Errorf("Ошибка коммита сообщения: %v", err)
		}
	}
}

// processMessage десериализует, проверяет и отправляет письмо.
// Возвращает error, только если обработку прервала остановка сервиса и нужен Kafka-retry.
// nil - письмо отправлено или ушло в DLQ.
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	ctx, span := c.tracer.Start(ctx, "Consumer.processMessage",
		trace.WithAttributes(attribute.String("submission.id", string(msg.Key))))
	defer span.End()

	var mail notify.Message
	if err := json.Unmarshal(msg.Value, &mail); err != nil {
		log.Warnf("Невалидное JSON-сообщение, отправка в DLQ: %v", err)
		c.sendToDLQ(ctx, msg, "json_unmarshal_error", err)
		metrics.KafkaMessagesProcessed.WithLabelValues("dlq_validation").Inc()
		return nil
	}

	if err := validator.ValidateStruct(&mail); err != nil {
		log.Warnf("Ошибка валидации письма для заявки %s, отправка в DLQ: %v", mail.SubmissionID, err)
		c.sendToDLQ(ctx, msg, "validation_error", err)
		metrics.KafkaMessagesProcessed.WithLabelValues("dlq_validation").Inc()
		return nil
	}

	var sendErr error
	for i := 0; i < c.maxRetries; i++ {
		sendErr = c.mailer.Send(ctx, mail)
		if sendErr == nil {
			break
		}
		log.Warnf("Ошибка отправки письма %s (попытка %d/%d): %v", mail.Kind, i+1, c.maxRetries, sendErr)
		if i+1 < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(i + 1)):
			}
		}
	}

	if sendErr != nil {
		if errors.Is(sendErr, context.Canceled) && ctx.Err() != nil {
			return sendErr
		}
		log.Errorf("Не удалось отправить письмо %s по заявке %s после %d попыток, отправка в DLQ.", mail.Kind, mail.SubmissionID, c.maxRetries)
		c.sendToDLQ(ctx, msg, "send_error", sendErr)
		metrics.KafkaMessagesProcessed.WithLabelValues("dlq_send_error").Inc()
		return nil
	}

	log.WithFields(log.Fields{"submission": mail.SubmissionID, "kind": mail.Kind}).Info("Письмо из очереди отправлено")
	metrics.KafkaMessagesProcessed.WithLabelValues("success").Inc()
	return nil
}

// sendToDLQ отправляет "битое" сообщение в DLQ топик.
func (c *Consumer) sendToDLQ(ctx context.Context, originalMsg kafka.Message, reason string, procErr error) {
	_, span := c.tracer.Start(ctx, "Consumer.sendToDLQ")
	defer span.End()

	err := c.dlqWriter.WriteMessages(ctx, kafka.Message{
		Key:   originalMsg.Key,
		Value: originalMsg.Value,
		Headers: []kafka.Header{
			{Key: "X-Original-Topic", Value: []byte(originalMsg.Topic)},
			{Key: "X-Error-Reason", Value: []byte(reason)},
			{Key: "X-Error-Details", Value: []byte(procErr.Error())},
		},
	})

	if err != nil {
		log.Errorf("КРИТИЧНО: Не удалось отправить сообщение %s в DLQ: %v", string(originalMsg.Key), err)
		metrics.KafkaMessagesProcessed.WithLabelValues("dlq_failed_write").Inc()
		return
	}
	log.Printf("Сообщение %s отправлено в DLQ (Причина: %s)", string(originalMsg.Key), reason)
}
