package main

import (
	"context"
	"errors"
	"fmt"
	"lcl_quote/internal/api"
	"lcl_quote/internal/cache"
	"lcl_quote/internal/config"
	"lcl_quote/internal/database"
	"lcl_quote/internal/ipinfo"
	"lcl_quote/internal/kafka"
	"lcl_quote/internal/logging"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"
	"lcl_quote/internal/notify"
	"lcl_quote/internal/pipeline"
	"lcl_quote/internal/ports"
	"lcl_quote/internal/quote"
	"lcl_quote/internal/sheet"
	"lcl_quote/internal/tracing"
	"lcl_quote/internal/validator"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Get()

	closeLog, err := logging.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Ошибка настройки логирования: %v", err)
	}
	defer closeLog()

	shutdownTracing, err := tracing.InitTracerProvider(cfg.Tracing.Enabled, cfg.Tracing.ServiceName, cfg.Tracing.JaegerURL)
	if err != nil {
		log.Fatalf("Ошибка инициализации трейсинга: %v", err)
	}
	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация хранилища (если нужна база данных)
	var storage database.Storage
	if cfg.UsesPostgres() {
		storage, err = database.New(cfg.Postgres.URL, cfg.Postgres.MigrationsPath)
		if err != nil {
			log.Fatalf("Ошибка инициализации хранилища: %v", err)
		}
		defer storage.Close()
	}

	rates, err := setupRates(ctx, cfg, storage)
	if err != nil {
		log.Fatalf("Ошибка инициализации таблицы ставок: %v", err)
	}

	var leads pipeline.LeadStore = sheet.NewLeadBook(cfg.Leads.Path, cfg.Leads.Sheet)
	if cfg.Leads.Store == "postgres" {
		leads = storage
	}

	// Справочник портов и кэш поиска
	directory, err := ports.Load(cfg.Ports.File)
	if err != nil {
		log.Fatalf("Ошибка загрузки справочника портов: %v", err)
	}
	searcher := ports.NewSearcher(directory, cache.NewLRU[[]model.Port]("ports", cfg.Cache.Size))
	searcher.WarmUp(ctx, cfg.Ports.WarmUp)

	// Уведомления: прямая отправка или через очередь Kafka
	renderer := notify.NewRenderer(cfg.Mail.CustomerFrom, cfg.Mail.SystemFrom, cfg.Mail.OpsMailbox).WithPorts(directory)
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.Mail.SMTP.Host,
		Port:     cfg.Mail.SMTP.Port,
		Username: cfg.Mail.SMTP.Username,
		Password: cfg.Mail.SMTP.Password,
		Timeout:  cfg.Mail.Timeout,
	})

	var notifier pipeline.Notifier = notify.NewEmailNotifier(renderer, mailer)
	if cfg.Mail.NotifyMode == "kafka" {
		publisher := kafka.NewPublisher(cfg.Kafka, renderer)
		defer publisher.Close()
		notifier = publisher

		// Запуск Kafka Consumer
		consumer := kafka.NewConsumer(cfg.Kafka, mailer)
		go consumer.Run(ctx)
	}

	v := validator.New(directory, time.Now)
	fallback := quote.Fallback{
		Enabled: cfg.Quote.FallbackEnabled,
		PerCBM:  cfg.Quote.FallbackPerCBM,
		PerTon:  cfg.Quote.FallbackPerTon,
	}
	p := pipeline.New(v, ipinfo.NewResolver(), leads, notifier, rates, quote.NewQuoter(fallback),
		pipeline.WithTimeouts(pipeline.Timeouts{
			IPLookup: cfg.IPLookup.Timeout,
			Store:    cfg.Leads.Timeout,
			Notify:   cfg.Mail.Timeout,
		}),
	)

	// Запуск HTTP-сервера
	server := api.NewServer(api.Options{
		Port:         cfg.HTTP.Port,
		StaticDir:    cfg.HTTP.StaticDir,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}, api.NewQuoteHandler(p, v, searcher))
	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Ошибка запуска HTTP-сервера: %v", err)
		}
	}()

	// Ожидание сигнала для корректного завершения работы
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	log.Println("Сервис останавливается...")
	shutdownCtx, done := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Ошибка остановки HTTP-сервера: %v", err)
	}
	cancel()
	shutdownTracing(shutdownCtx)
	log.Println("Сервис успешно остановлен.")
}

// setupRates выбирает источник ставок. Файл ставок создается из таблицы
// по умолчанию, если его нет. При QUOTE_IMPORT_RATES ставки из файла
// переносятся в Postgres.
func setupRates(ctx context.Context, cfg *config.Config, storage database.Storage) (pipeline.RateSource, error) {
	book := sheet.NewRateBook(cfg.Quote.RatesFile, cfg.Quote.RatesSheet)
	if cfg.Quote.RatesSource == "xlsx" || cfg.Quote.ImportRates {
		if err := sheet.SeedRateBook(cfg.Quote.RatesFile, cfg.Quote.RatesSheet, quote.DefaultRates); err != nil {
			return nil, err
		}
	}

	if cfg.Quote.ImportRates {
		if err := importRates(ctx, book, storage); err != nil {
			return nil, err
		}
	}

	switch cfg.Quote.RatesSource {
	case "xlsx":
		return book, nil
	case "postgres":
		return storage, nil
	default:
		return quote.DefaultRates, nil
	}
}

// rateUpserter - часть хранилища, принимающая ставки.
type rateUpserter interface {
	UpsertRate(ctx context.Context, rate model.RateEntry) error
}

func importRates(ctx context.Context, from pipeline.RateSource, to rateUpserter) error {
	if to == nil {
		return errors.New("импорт ставок требует Postgres")
	}
	entries, err := from.Rates(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла ставок: %w", err)
	}
	for _, e := range entries {
		if err := to.UpsertRate(ctx, e); err != nil {
			return err
		}
	}
	log.Infof("Импортировано ставок в Postgres: %d", len(entries))
	return nil
}
