package cache

import (
	"container/list"
	"context"
	"lcl_quote/internal/metrics"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Cache - потокобезопасный кэш с контекстом для сквозной трассировки.
type Cache[V any] interface {
	Set(ctx context.Context, key string, value V)
	Get(ctx context.Context, key string) (V, bool)
	Len() int
}

// lruCache вытесняет давно не использованные (Least Recently Used) записи.
type lruCache[V any] struct {
	mu       sync.Mutex
	name     string
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	tracer   trace.Tracer
}

type entry[V any] struct {
	key   string
	value V
}

// NewLRU создает LRU-кэш заданной емкости. name - метка в метриках.
func NewLRU[V any](name string, capacity int) Cache[V] {
	return &lruCache[V]{
		name:     name,
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
		tracer:   otel.Tracer("lru-cache"),
	}
}

func (c *lruCache[V]) Set(ctx context.Context, key string, value V) {
	_, span := c.tracer.Start(ctx, "Cache.Set", trace.WithAttributes(attribute.String("cache.name", c.name)))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry[V]).value = value
		return
	}

	if c.queue.Len() >= c.capacity {
		c.removeOldest()
	}

	c.items[key] = c.queue.PushFront(&entry[V]{key: key, value: value})
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(c.queue.Len()))
}

func (c *lruCache[V]) Get(ctx context.Context, key string) (V, bool) {
	_, span := c.tracer.Start(ctx, "Cache.Get", trace.WithAttributes(attribute.String("cache.name", c.name)))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		metrics.CacheHits.WithLabelValues(c.name).Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return element.Value.(*entry[V]).value, true
	}

	metrics.CacheMisses.WithLabelValues(c.name).Inc()
	span.SetAttributes(attribute.Bool("cache.hit", false))
	var zero V
	return zero, false
}

func (c *lruCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// removeOldest удаляет самый старый элемент (мьютекс уже захвачен).
func (c *lruCache[V]) removeOldest() {
	element := c.queue.Back()
	if element == nil {
		return
	}
	item := c.queue.Remove(element).(*entry[V])
	delete(c.items, item.key)

	metrics.CacheEvictions.WithLabelValues(c.name).Inc()
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(c.queue.Len()))
}
