package ports

import (
	"context"
	"lcl_quote/internal/cache"
	"lcl_quote/internal/model"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Searcher выполняет поиск по справочнику и кэширует результаты по запросу.
type Searcher struct {
	directory *Directory
	cache     cache.Cache[[]model.Port]
	tracer    trace.Tracer
}

// NewSearcher создает поиск поверх справочника.
func NewSearcher(directory *Directory, c cache.Cache[[]model.Port]) *Searcher {
	return &Searcher{
		directory: directory,
		cache:     c,
		tracer:    otel.Tracer("port-search"),
	}
}

// Search возвращает до MaxResults портов, лучшие первыми.
func (s *Searcher) Search(ctx context.Context, query string) []model.Port {
	ctx, span := s.tracer.Start(ctx, "Ports.Search", trace.WithAttributes(attribute.String("query", query)))
	defer span.End()

	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return []model.Port{}
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached
	}

	result := Search(key, s.directory.All())
	s.cache.Set(ctx, key, result)
	return result
}

// WarmUp заранее заполняет кэш для популярных запросов.
func (s *Searcher) WarmUp(ctx context.Context, queries []string) {
	for _, q := range queries {
		s.Search(ctx, q)
	}
	log.Printf("Кэш поиска портов прогрет: %d запросов.", len(queries))
}
