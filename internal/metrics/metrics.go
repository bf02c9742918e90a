package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

var (
	// HttpRequestsTotal - Счетчик HTTP-запросов
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов",
		},
		[]string{"handler", "status"},
	)

	// HttpRequestDuration - Гистограмма длительности HTTP-запросов
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Длительность HTTP запросов",
		},
		[]string{"handler"},
	)

	// SubmissionsTotal - Заявки по итогу обработки
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lcl_submissions_total",
			Help: "Количество заявок на котировку",
		},
		[]string{"outcome"}, // "success", "validation_error", "failed"
	)

	// QuotesTotal - Котировки по основанию расчета
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lcl_quotes_total",
			Help: "Количество рассчитанных котировок",
		},
		[]string{"basis"}, // "volume", "weight", "none"
	)

	// QuoteAmount - Распределение сумм котировок в USD
	QuoteAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lcl_quote_amount_usd",
			Help:    "Суммы индикативных котировок",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	// BestEffortFailures - Ошибки шагов, которые не прерывают заявку
	BestEffortFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lcl_best_effort_failures_total",
			Help: "Количество некритичных ошибок конвейера",
		},
		[]string{"step"}, // "ip_lookup", "rates", "notify"
	)

	// StoreErrors - Ошибки журнала заявок и ставок
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lcl_store_errors_total",
			Help: "Количество ошибок хранилища",
		},
		[]string{"store", "operation"},
	)

	// CacheHits - Счетчик попаданий в кэш
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Количество попаданий в кэш",
		},
		[]string{"cache"},
	)

	// CacheMisses - Счетчик промахов кэша
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Количество промахов кэша",
		},
		[]string{"cache"},
	)

	// CacheSize - текущий размер кэша
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size_items",
			Help: "Текущий размер кэша в элементах",
		},
		[]string{"cache"},
	)

	// CacheEvictions - Счетчик вытеснений из кэша (LRU)
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Количество вытесненных из кэша элементов",
		},
		[]string{"cache"},
	)

	// KafkaMessagesProcessed - Счетчик обработанных писем из очереди
	KafkaMessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Количество обработанных сообщений Kafka",
		},
		[]string{"status"}, // "success", "dlq_validation", "dlq_send_error", "dlq_failed_write", "published"
	)
)

// Init используется для регистрации метрик.
// promauto регистрирует их автоматически при создании.
func Init() {
	log.Info("Prometheus метрики инициализированы.")
}
