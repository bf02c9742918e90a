package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Storage - журнал заявок и таблица ставок в PostgreSQL.
type Storage interface {
	Append(ctx context.Context, sub model.Submission) error
	Rates(ctx context.Context) ([]model.RateEntry, error)
	UpsertRate(ctx context.Context, rate model.RateEntry) error
	Close() error
}

// postgresStorage - реализация Storage поверх sqlx.
type postgresStorage struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// New создает подключение к БД, применяет миграции и возвращает Storage.
func New(dbURL, migrationsPath string) (Storage, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	if err := runMigrations(dbURL, migrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	return &postgresStorage{
		db:     db,
		tracer: otel.Tracer("postgres-storage"),
	}, nil
}

// runMigrations выполняет миграции БД до последней версии.
func runMigrations(dbURL, migrationsPath string) error {
	log.Println("Поиск и применение миграций...")

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dbURL)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр миграции: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("не удалось выполнить миграции: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("не удалось получить версию миграции: %w", err)
	}
	if dirty {
		log.Warnf("БД в 'грязном' состоянии (dirty). Версия: %d. Рекомендуется проверка.", version)
	}

	log.Printf("Миграции успешно применены. Текущая версия БД: %d", version)
	return nil
}

const insertLeadQuery = `INSERT INTO leads (
    id, submitted_at, company, contact_person, email, mobile, pol, pod, ready_date, incoterm,
    pickup_address, commodity, total_cbm, gross_weight_kg, hazardous, customs, packages,
    attachments, requester_ip, quote_usd, charging_basis, locale, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

// Append сохраняет заявку одной строкой.
func (s *postgresStorage) Append(ctx context.Context, sub model.Submission) error {
	ctx, span := s.tracer.Start(ctx, "DB.Append")
	defer span.End()

	var quoteUSD sql.NullInt64
	var basis sql.NullString
	if sub.Quote != nil {
		quoteUSD = sql.NullInt64{Int64: sub.Quote.Amount, Valid: true}
		basis = sql.NullString{String: string(sub.Quote.ChargingBasis), Valid: true}
	}

	req := sub.Request
	if _, err := s.db.ExecContext(ctx, insertLeadQuery,
		sub.ID, sub.SubmittedAt, req.Company, req.ContactPerson, req.Email, req.Mobile,
		req.POL, req.POD, req.ReadyDate, req.Incoterm, req.PickupAddress, req.Commodity,
		sub.TotalCBM, req.GrossWeight, req.Hazardous, req.Customs, sub.PackageSummary(),
		sub.AttachmentNames(), sub.RequesterIP, quoteUSD, basis, sub.Locale, model.LeadStatus,
	); err != nil {
		metrics.StoreErrors.WithLabelValues("postgres", "append").Inc()
		return fmt.Errorf("ошибка сохранения заявки: %w", err)
	}
	return nil
}

// Rates возвращает всю таблицу ставок.
func (s *postgresStorage) Rates(ctx context.Context) ([]model.RateEntry, error) {
	ctx, span := s.tracer.Start(ctx, "DB.Rates")
	defer span.End()

	var table []model.RateEntry
	query := `SELECT origin_code, destination_code, rate_per_cbm, rate_per_ton FROM rates ORDER BY origin_code, destination_code`
	if err := s.db.SelectContext(ctx, &table, query); err != nil {
		metrics.StoreErrors.WithLabelValues("postgres", "get_rates").Inc()
		return nil, fmt.Errorf("ошибка получения ставок: %w", err)
	}
	return table, nil
}

// UpsertRate добавляет или обновляет ставку для пары портов.
func (s *postgresStorage) UpsertRate(ctx context.Context, rate model.RateEntry) error {
	ctx, span := s.tracer.Start(ctx, "DB.UpsertRate")
	defer span.End()

	query := `INSERT INTO rates (origin_code, destination_code, rate_per_cbm, rate_per_ton)
        VALUES (:origin_code, :destination_code, :rate_per_cbm, :rate_per_ton)
        ON CONFLICT (origin_code, destination_code)
        DO UPDATE SET rate_per_cbm = EXCLUDED.rate_per_cbm, rate_per_ton = EXCLUDED.rate_per_ton`
	if _, err := s.db.NamedExecContext(ctx, query, rate); err != nil {
		metrics.StoreErrors.WithLabelValues("postgres", "upsert_rate").Inc()
		return fmt.Errorf("ошибка сохранения ставки %s-%s: %w", rate.OriginCode, rate.DestinationCode, err)
	}
	return nil
}

// Close закрывает соединение с БД.
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
