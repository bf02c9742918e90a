package tracing

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// newJaegerExporter создает экспортер, который отправляет трейсы в Jaeger.
func newJaegerExporter(url string) (sdktrace.SpanExporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(url)))
}

// InitTracerProvider настраивает и регистрирует OpenTelemetry-провайдер.
// Если трейсинг выключен, остается глобальный no-op провайдер.
func InitTracerProvider(enabled bool, serviceName, jaegerURL string) (func(context.Context), error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	if !enabled {
		log.Info("Трейсинг выключен.")
		return func(context.Context) {}, nil
	}

	exporter, err := newJaegerExporter(jaegerURL)
	if err != nil {
		return nil, err
	}

	// Ресурс (описание сервиса)
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(1.0)),
	)
	otel.SetTracerProvider(tp)

	log.Infof("OpenTelemetry (Jaeger) инициализирован: %s", jaegerURL)

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			log.Errorf("Ошибка остановки TracerProvider: %v", err)
		}
	}, nil
}
