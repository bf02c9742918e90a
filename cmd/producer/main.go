package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"lcl_quote/internal/generator"
	"lcl_quote/internal/model"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	log "github.com/sirupsen/logrus"
)

// producerConfig - настройки демонстрационного продюсера заявок.
type producerConfig struct {
	APIURL   string        `env:"PRODUCER_API_URL" env-default:"http://localhost:8081/api/quote"`
	Interval time.Duration `env:"PRODUCER_INTERVAL" env-default:"2s"`
	Seed     int64         `env:"PRODUCER_SEED" env-default:"0"`
	Ports    []string      `env:"PRODUCER_PORTS" env-default:"AEJEA,CNSHA,USNYC,DEHAM,NLRTM,SGSIN"`
}

// Producer отправляет случайные заявки в API формы.
type Producer struct {
	client    *http.Client
	url       string
	generator *generator.Generator
}

// NewProducer создает и настраивает новый экземпляр продюсера.
func NewProducer(cfg producerConfig) *Producer {
	return &Producer{
		client:    &http.Client{Timeout: 30 * time.Second},
		url:       cfg.APIURL,
		generator: generator.New(cfg.Seed, cfg.Ports),
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Quote   *int64            `json:"quote"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// send отправляет одну заявку и возвращает разобранный ответ.
func (p *Producer) send(ctx context.Context, req model.QuoteRequest) (envelope, error) {
	var resp envelope

	body, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("ошибка сериализации заявки: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return resp, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return resp, fmt.Errorf("ошибка отправки заявки: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, fmt.Errorf("некорректный ответ API (%d): %w", httpResp.StatusCode, err)
	}
	return resp, nil
}

// Run запускает цикл отправки заявок до отмены контекста.
func (p *Producer) Run(ctx context.Context, interval time.Duration) {
	log.Println("Продюсер запущен. Нажмите CTRL+C для остановки.")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Продюсер останавливается.")
			return
		case <-ticker.C:
			req := p.generator.NewQuoteRequest(time.Now())
			resp, err := p.send(ctx, req)
			switch {
			case err != nil:
				log.Errorf("Ошибка: %v", err)
			case !resp.Success:
				log.WithField("errors", resp.Errors).Warnf("Заявка %s-%s отклонена: %s", req.POL, req.POD, resp.Error)
			case resp.Quote != nil:
				log.Infof("Заявка %s %s-%s принята, котировка USD %d", req.Company, req.POL, req.POD, *resp.Quote)
			default:
				log.Infof("Заявка %s %s-%s принята без котировки", req.Company, req.POL, req.POD)
			}
		}
	}
}

func main() {
	var cfg producerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Не удалось прочитать настройки продюсера: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	NewProducer(cfg).Run(ctx, cfg.Interval)
}
