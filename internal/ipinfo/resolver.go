package ipinfo

import (
	"context"
	"errors"
	"net"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoAddress - в запросе нет публичного адреса заявителя.
var ErrNoAddress = errors.New("нет публичного IP-адреса заявителя")

// Resolver определяет публичный IP заявителя по данным самого запроса:
// адресу из формы (userIP) или адресу соединения после RealIP.
// Внешние сервисы не опрашиваются: с сервера они видят адрес сервера.
type Resolver struct {
	tracer trace.Tracer
}

// NewResolver создает резолвер.
func NewResolver() *Resolver {
	return &Resolver{tracer: otel.Tracer("ip-resolver")}
}

// Resolve возвращает адрес из hint, если он публичный. Частные, loopback
// и некорректные адреса дают ErrNoAddress.
func (r *Resolver) Resolve(ctx context.Context, hint string) (string, error) {
	_, span := r.tracer.Start(ctx, "IPResolver.Resolve")
	defer span.End()

	ip := net.ParseIP(stripPort(strings.TrimSpace(hint)))
	if ip == nil || !isPublic(ip) {
		span.SetAttributes(attribute.Bool("ip.public", false))
		return "", ErrNoAddress
	}
	span.SetAttributes(attribute.Bool("ip.public", true))
	return ip.String(), nil
}

// stripPort убирает порт из "host:port" и "[v6]:port".
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast())
}
