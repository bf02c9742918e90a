package sheet

import (
	"context"
	"errors"
	"fmt"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRateSheet - лист матрицы ставок.
const DefaultRateSheet = "Rates"

// ErrBadRateRow - строку матрицы ставок не удалось разобрать.
var ErrBadRateRow = errors.New("некорректная строка ставок")

// RateHeader - колонки матрицы ставок.
var RateHeader = []string{"POL", "POD", "Rate USD/CBM", "Rate USD/Ton"}

// RateBook читает матрицу ставок из XLSX-файла, который ведет отдел продаж.
// Файл перечитывается при каждом запросе, правки применяются без перезапуска.
type RateBook struct {
	path   string
	sheet  string
	tracer trace.Tracer
}

// NewRateBook создает источник ставок из файла.
func NewRateBook(path, sheet string) *RateBook {
	if sheet == "" {
		sheet = DefaultRateSheet
	}
	return &RateBook{path: path, sheet: sheet, tracer: otel.Tracer("xlsx-rates")}
}

// Rates возвращает ставки. Строки с ошибками пропускаются.
func (b *RateBook) Rates(ctx context.Context) ([]model.RateEntry, error) {
	_, span := b.tracer.Start(ctx, "RateBook.Rates")
	defer span.End()

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("xlsx", "read_rates").Inc()
		return nil, fmt.Errorf("не удалось открыть файл ставок %s: %w", b.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(b.sheet)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("xlsx", "read_rates").Inc()
		return nil, fmt.Errorf("ошибка чтения листа %q: %w", b.sheet, err)
	}

	table := make([]model.RateEntry, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		entry, err := parseRateRow(row)
		if err != nil {
			log.Warnf("Строка %d листа %q пропущена: %v", i+1, b.sheet, err)
			continue
		}
		table = append(table, entry)
	}
	return table, nil
}

func parseRateRow(row []string) (model.RateEntry, error) {
	if len(row) < len(RateHeader) {
		return model.RateEntry{}, fmt.Errorf("%w: ожидается %d колонки, получено %d", ErrBadRateRow, len(RateHeader), len(row))
	}
	origin, destination := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
	if origin == "" || destination == "" {
		return model.RateEntry{}, fmt.Errorf("%w: не указан порт", ErrBadRateRow)
	}
	perCBM, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return model.RateEntry{}, fmt.Errorf("%w: ставка за CBM: %w", ErrBadRateRow, err)
	}
	perTon, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return model.RateEntry{}, fmt.Errorf("%w: ставка за тонну: %w", ErrBadRateRow, err)
	}
	return model.RateEntry{
		OriginCode:      origin,
		DestinationCode: destination,
		RatePerCBM:      perCBM,
		RatePerTon:      perTon,
	}, nil
}

// SeedRateBook создает файл ставок с начальными значениями, если его еще нет.
func SeedRateBook(path, sheet string, entries []model.RateEntry) error {
	if sheet == "" {
		sheet = DefaultRateSheet
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := ensureSheet(f, sheet, true, RateHeader); err != nil {
		return err
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.OriginCode, e.DestinationCode, e.RatePerCBM, e.RatePerTon}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("ошибка записи ставки: %w", err)
		}
	}

	log.Printf("Создан файл ставок %s (%d направлений).", path, len(entries))
	return save(f, path, true)
}
