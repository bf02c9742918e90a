package pipeline

import (
	"context"
	"lcl_quote/internal/model"
)

//go:generate mockgen -source=interfaces.go -destination=./mocks/pipeline_mock.go -package=mocks

// IPResolver определяет публичный IP заявителя.
type IPResolver interface {
	Resolve(ctx context.Context, hint string) (string, error)
}

// LeadStore дописывает заявку в журнал.
type LeadStore interface {
	Append(ctx context.Context, sub model.Submission) error
}

// Notifier сообщает клиенту и отделу продаж о новой заявке.
type Notifier interface {
	Notify(ctx context.Context, sub model.Submission) error
}

// RateSource отдает актуальную таблицу ставок.
type RateSource interface {
	Rates(ctx context.Context) ([]model.RateEntry, error)
}
