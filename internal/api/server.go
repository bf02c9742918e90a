package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options - параметры HTTP-сервера.
type Options struct {
	Port         string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server представляет HTTP-сервер.
type Server struct {
	opts    Options
	handler *QuoteHandler
	router  *chi.Mux
	http    *http.Server
}

// NewServer создает и настраивает новый экземпляр сервера.
func NewServer(opts Options, handler *QuoteHandler) *Server {
	server := &Server{
		opts:    opts,
		handler: handler,
	}
	server.router = server.setupRouter()
	server.http = &http.Server{
		Addr:         fmt.Sprintf(":%s", opts.Port),
		Handler:      server.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return server
}

// Handler возвращает корневой обработчик с трассировкой.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server")
}

// Run запускает HTTP-сервер. После Shutdown возвращает nil.
func (s *Server) Run() error {
	log.Infof("🚀 HTTP-сервер запущен на http://localhost%s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown дожидается завершения текущих запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// setupRouter настраивает маршрутизацию.
func (s *Server) setupRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors)

	// API формы
	router.Post("/api/quote", s.handler.Submit)
	router.Options("/api/quote", s.handler.Preflight)
	router.Get("/api/quote/estimate", s.handler.Estimate)
	router.Get("/api/ports", s.handler.SearchPorts)
	router.MethodNotAllowed(s.handler.MethodNotAllowed)

	// Служебные маршруты
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	// Статические файлы формы отдаются для всех остальных путей
	if s.opts.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.opts.StaticDir))
		router.NotFound(fileServer.ServeHTTP)
	}

	return router
}

// cors разрешает форме на другом домене обращаться к API.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}
