package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"lcl_quote/internal/i18n"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"
	"lcl_quote/internal/pipeline"
	"lcl_quote/internal/quote"
	"lcl_quote/internal/validator"
	"math"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	// maxBodySize ограничивает тело запроса с вложениями.
	maxBodySize = 50 << 20
	// sniffLen - сколько байт файла читается для определения типа.
	sniffLen = 3072
)

// QuoteService - конвейер заявок, как его видит HTTP-слой.
type QuoteService interface {
	Submit(ctx context.Context, req model.QuoteRequest, clientIP string, locale i18n.Locale) (*pipeline.Result, error)
	Estimate(ctx context.Context, pol, pod string, totalCBM, grossWeightKg float64) (model.QuoteResult, error)
}

// AttachmentChecker проверяет файл в момент загрузки.
type AttachmentChecker interface {
	CheckAttachment(att model.Attachment, locale i18n.Locale) string
}

// PortSearcher ищет порты для автодополнения.
type PortSearcher interface {
	Search(ctx context.Context, query string) []model.Port
}

// Response - JSON-конверт ответа формы.
type Response struct {
	Success bool              `json:"success"`
	Quote   *int64            `json:"quote,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// QuoteHandler обрабатывает HTTP-запросы формы котировки.
type QuoteHandler struct {
	service  QuoteService      // Используем интерфейс
	checker  AttachmentChecker // Используем интерфейс
	searcher PortSearcher
}

// NewQuoteHandler создает новый экземпляр QuoteHandler.
func NewQuoteHandler(service QuoteService, checker AttachmentChecker, searcher PortSearcher) *QuoteHandler {
	return &QuoteHandler{service: service, checker: checker, searcher: searcher}
}

// Submit принимает заявку в JSON или multipart-форме и возвращает конверт с котировкой.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	handlerName := "SubmitQuote"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	locale := i18n.Negotiate("", r.Header.Get("Accept-Language"))

	req, fieldErrors, err := h.decodeRequest(r)
	if err != nil {
		log.Warnf("Некорректное тело заявки: %v", err)
		respond(w, handlerName, http.StatusBadRequest, Response{Error: i18n.T(locale, "error.invalidRequest", nil)})
		return
	}
	locale = i18n.Negotiate(req.Locale, r.Header.Get("Accept-Language"))
	if len(fieldErrors) > 0 {
		respond(w, handlerName, http.StatusBadRequest, Response{
			Error:  i18n.T(locale, "error.validation", nil),
			Errors: fieldErrors,
		})
		return
	}

	result, err := h.service.Submit(r.Context(), req, clientIP(r), locale)
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			respond(w, handlerName, http.StatusBadRequest, Response{
				Error:  i18n.T(locale, "error.validation", nil),
				Errors: verr.Fields,
			})
			return
		}
		if !errors.Is(err, pipeline.ErrSubmissionFailed) {
			log.Errorf("Непредвиденная ошибка обработки заявки: %v", err)
		}
		respond(w, handlerName, http.StatusInternalServerError, Response{Error: i18n.T(locale, "error.general", nil)})
		return
	}

	resp := Response{Success: true, Message: i18n.T(locale, "success.message", nil)}
	if result.Quote != nil {
		amount := result.Quote.Amount
		resp.Quote = &amount
		resp.Message = i18n.T(locale, "success.withQuote", map[string]string{"amount": strconv.FormatInt(amount, 10)})
	}
	respond(w, handlerName, http.StatusOK, resp)
}

// decodeRequest читает заявку. Для multipart вложения проверяются сразу при разборе,
// ошибки файлов возвращаются как ошибки полей.
func (h *QuoteHandler) decodeRequest(r *http.Request) (model.QuoteRequest, map[string]string, error) {
	var req model.QuoteRequest

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, nil, err
		}
		return req, nil, nil
	}

	if err := r.ParseMultipartForm(maxBodySize); err != nil {
		return req, nil, err
	}
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		return req, nil, err
	}

	locale := i18n.Negotiate(req.Locale, r.Header.Get("Accept-Language"))
	for _, fh := range r.MultipartForm.File["attachments"] {
		att, err := describeUpload(fh)
		if err != nil {
			return req, nil, err
		}
		if msg := h.checker.CheckAttachment(att, locale); msg != "" {
			return req, map[string]string{"attachments": msg}, nil
		}
		req.Attachments = append(req.Attachments, att)
	}
	return req, nil, nil
}

// describeUpload определяет тип файла по содержимому. Сам файл не сохраняется.
func describeUpload(fh *multipart.FileHeader) (model.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return model.Attachment{}, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return model.Attachment{}, err
	}

	return model.Attachment{
		Name:        fh.Filename,
		ContentType: validator.DetectContentType(fh.Filename, head[:n]),
		Size:        fh.Size,
	}, nil
}

// Estimate - мгновенный расчет без сохранения заявки.
func (h *QuoteHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	handlerName := "EstimateQuote"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	q := r.URL.Query()
	locale := i18n.Negotiate(q.Get("locale"), r.Header.Get("Accept-Language"))

	cbm, errCBM := strconv.ParseFloat(q.Get("cbm"), 64)
	weight, errWeight := strconv.ParseFloat(q.Get("weight"), 64)
	pol, pod := strings.TrimSpace(q.Get("pol")), strings.TrimSpace(q.Get("pod"))
	if pol == "" || pod == "" || errCBM != nil || errWeight != nil || !validMeasure(cbm) || !validMeasure(weight) {
		respond(w, handlerName, http.StatusBadRequest, Response{Error: i18n.T(locale, "error.invalidRequest", nil)})
		return
	}

	result, err := h.service.Estimate(r.Context(), pol, pod, cbm, weight)
	if err != nil {
		if errors.Is(err, quote.ErrNoRate) {
			respond(w, handlerName, http.StatusNotFound, Response{Error: i18n.T(locale, "error.noRate", nil)})
			return
		}
		log.Errorf("Ошибка расчета котировки %s-%s: %v", pol, pod, err)
		respond(w, handlerName, http.StatusInternalServerError, Response{Error: i18n.T(locale, "error.general", nil)})
		return
	}
	respond(w, handlerName, http.StatusOK, result)
}

// validMeasure - объем и вес должны быть конечными и неотрицательными.
func validMeasure(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// SearchPorts возвращает порты для автодополнения, лучшие первыми.
func (h *QuoteHandler) SearchPorts(w http.ResponseWriter, r *http.Request) {
	handlerName := "SearchPorts"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	found := h.searcher.Search(r.Context(), r.URL.Query().Get("q"))
	if found == nil {
		found = []model.Port{}
	}
	respond(w, handlerName, http.StatusOK, found)
}

// Preflight отвечает на CORS-запрос браузера.
func (h *QuoteHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	metrics.HttpRequestsTotal.WithLabelValues("Preflight", strconv.Itoa(http.StatusNoContent)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

// MethodNotAllowed - JSON-ответ вместо текстового ответа chi.
func (h *QuoteHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond(w, "MethodNotAllowed", http.StatusMethodNotAllowed, Response{Error: "Method not allowed"})
}

// clientIP - адрес клиента без порта. RealIP уже подставил X-Forwarded-For, если он был.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// respond пишет JSON-ответ и учитывает его в метриках.
func respond(w http.ResponseWriter, handlerName string, code int, payload interface{}) {
	metrics.HttpRequestsTotal.WithLabelValues(handlerName, strconv.Itoa(code)).Inc()
	respondWithJSON(w, code, payload)
}

// respondWithJSON вспомогательная функция для отправки JSON-ответов.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Ошибка сериализации ответа: %v", err)
		code = http.StatusInternalServerError
		response = []byte(`{"success":false}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
