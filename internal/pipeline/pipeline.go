package pipeline

import (
	"context"
	"errors"
	"fmt"
	"lcl_quote/internal/i18n"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"
	"lcl_quote/internal/quote"
	"lcl_quote/internal/validator"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UnknownIP записывается, если адрес заявителя определить не удалось.
const UnknownIP = "Unknown"

// ErrSubmissionFailed - заявку не удалось записать в журнал.
var ErrSubmissionFailed = errors.New("не удалось сохранить заявку")

// ValidationError содержит ошибки по полям формы.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("заявка не прошла проверку: %d полей с ошибками", len(e.Fields))
}

// Result - итог принятой заявки. Quote равен nil, если ставки нет.
type Result struct {
	Submission model.Submission
	Quote      *model.QuoteResult
}

// Timeouts ограничивают внешние вызовы конвейера.
type Timeouts struct {
	IPLookup time.Duration
	Store    time.Duration
	Notify   time.Duration
}

// Option настраивает конвейер.
type Option func(*Pipeline)

// WithClock подменяет источник времени.
func WithClock(clock func() time.Time) Option {
	return func(p *Pipeline) { p.clock = clock }
}

// WithIDGenerator подменяет генератор идентификаторов заявок.
func WithIDGenerator(newID func() string) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// WithTimeouts задает ограничения времени внешних вызовов.
func WithTimeouts(t Timeouts) Option {
	return func(p *Pipeline) { p.timeouts = t }
}

// Pipeline проводит заявку через проверку, расчет и побочные эффекты.
type Pipeline struct {
	validator *validator.Validator
	ips       IPResolver
	store     LeadStore
	notifier  Notifier
	rates     RateSource
	quoter    *quote.Quoter
	timeouts  Timeouts
	clock     func() time.Time
	newID     func() string
	tracer    trace.Tracer
}

// New создает конвейер обработки заявок.
func New(v *validator.Validator, ips IPResolver, store LeadStore, notifier Notifier, rates RateSource, quoter *quote.Quoter, opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: v,
		ips:       ips,
		store:     store,
		notifier:  notifier,
		rates:     rates,
		quoter:    quoter,
		timeouts:  Timeouts{IPLookup: 3 * time.Second, Store: 10 * time.Second, Notify: 15 * time.Second},
		clock:     time.Now,
		newID:     uuid.NewString,
		tracer:    otel.Tracer("submission-pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validator возвращает общий валидатор для предварительной проверки формы.
func (p *Pipeline) Validator() *validator.Validator {
	return p.validator
}

// Submit обрабатывает одну заявку. Ошибка возвращается только при
// непройденной проверке (*ValidationError) или сбое записи в журнал.
func (p *Pipeline) Submit(ctx context.Context, req model.QuoteRequest, clientIP string, locale i18n.Locale) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Pipeline.Submit", trace.WithAttributes(
		attribute.String("route", req.POL+"-"+req.POD),
		attribute.String("locale", string(locale)),
	))
	defer span.End()

	if fields := p.validator.Validate(req, locale); len(fields) > 0 {
		metrics.SubmissionsTotal.WithLabelValues("validation_error").Inc()
		span.SetStatus(codes.Error, "validation")
		return nil, &ValidationError{Fields: fields}
	}

	requesterIP := p.resolveIP(ctx, req.UserIP, clientIP)

	totalCBM := quote.TotalVolume(req.Packages)
	req.Mobile = NormalizeMobile(req.Mobile)

	result := p.computeQuote(ctx, req.POL, req.POD, totalCBM, req.GrossWeight)

	sub := model.Submission{
		ID:          p.newID(),
		Request:     req,
		TotalCBM:    totalCBM,
		RequesterIP: requesterIP,
		SubmittedAt: p.clock(),
		Locale:      string(locale),
		Quote:       result,
	}
	logger := log.WithFields(log.Fields{"submission": sub.ID, "route": req.POL + "-" + req.POD})

	if err := p.appendLead(ctx, sub); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		logger.Errorf("Не удалось записать заявку: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	p.notify(ctx, sub, logger)

	metrics.SubmissionsTotal.WithLabelValues("success").Inc()
	logger.WithField("quote", quoteLogValue(result)).Info("Заявка принята")
	return &Result{Submission: sub, Quote: result}, nil
}

// Estimate рассчитывает котировку без сохранения заявки.
func (p *Pipeline) Estimate(ctx context.Context, pol, pod string, totalCBM, grossWeightKg float64) (model.QuoteResult, error) {
	ctx, span := p.tracer.Start(ctx, "Pipeline.Estimate")
	defer span.End()

	return p.quoter.Quote(pol, pod, totalCBM, grossWeightKg, p.rateTable(ctx))
}

// resolveIP перебирает адрес из формы и адрес соединения, первый публичный
// побеждает. Заявка никогда не прерывается: без адреса пишется Unknown.
func (p *Pipeline) resolveIP(ctx context.Context, hints ...string) string {
	if p.ips == nil {
		return UnknownIP
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.IPLookup)
	defer cancel()

	var lastErr error
	for _, hint := range hints {
		if hint == "" {
			continue
		}
		ip, err := p.ips.Resolve(ctx, hint)
		if err == nil && ip != "" {
			return ip
		}
		lastErr = err
	}
	metrics.BestEffortFailures.WithLabelValues("ip_lookup").Inc()
	log.Warnf("Не удалось определить IP заявителя: %v", lastErr)
	return UnknownIP
}

func (p *Pipeline) rateTable(ctx context.Context) []model.RateEntry {
	if p.rates == nil {
		return nil
	}
	table, err := p.rates.Rates(ctx)
	if err != nil {
		metrics.BestEffortFailures.WithLabelValues("rates").Inc()
		log.Warnf("Таблица ставок недоступна, используется ставка по умолчанию: %v", err)
		return nil
	}
	return table
}

func (p *Pipeline) computeQuote(ctx context.Context, pol, pod string, totalCBM, grossWeightKg float64) *model.QuoteResult {
	ctx, span := p.tracer.Start(ctx, "Pipeline.computeQuote")
	defer span.End()

	res, err := p.quoter.Quote(pol, pod, totalCBM, grossWeightKg, p.rateTable(ctx))
	if err != nil {
		metrics.QuotesTotal.WithLabelValues("none").Inc()
		if !errors.Is(err, quote.ErrNoRate) {
			log.Warnf("Ошибка расчета котировки: %v", err)
		}
		return nil
	}

	metrics.QuotesTotal.WithLabelValues(string(res.ChargingBasis)).Inc()
	metrics.QuoteAmount.Observe(float64(res.Amount))
	return &res
}

func (p *Pipeline) appendLead(ctx context.Context, sub model.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Store)
	defer cancel()
	return p.store.Append(ctx, sub)
}

func (p *Pipeline) notify(ctx context.Context, sub model.Submission, logger *log.Entry) {
	if p.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Notify)
	defer cancel()

	if err := p.notifier.Notify(ctx, sub); err != nil {
		metrics.BestEffortFailures.WithLabelValues("notify").Inc()
		logger.Warnf("Не удалось отправить уведомления: %v", err)
	}
}

// NormalizeMobile оставляет только цифры и добавляет ведущий "+".
func NormalizeMobile(mobile string) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func quoteLogValue(q *model.QuoteResult) string {
	if q == nil {
		return "manual"
	}
	return fmt.Sprintf("USD %d", q.Amount)
}
