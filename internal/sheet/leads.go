package sheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"lcl_quote/internal/metrics"
	"lcl_quote/internal/model"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultLeadSheet - лист журнала заявок.
const DefaultLeadSheet = "Quote Leads"

// LeadHeader - порядок колонок журнала.
var LeadHeader = []string{
	"Timestamp", "Company", "Contact Person", "Email", "Mobile",
	"POL", "POD", "Ready Date", "Incoterm", "Pickup Address",
	"Commodity", "Total CBM", "Gross Weight (kg)", "Hazardous", "Customs",
	"Packages", "Attachments", "User IP", "Quote USD", "Status",
}

const timestampLayout = "2006-01-02 15:04:05"

// LeadBook дописывает заявки в XLSX-файл, по строке на заявку.
type LeadBook struct {
	mu     sync.Mutex
	path   string
	sheet  string
	tracer trace.Tracer
}

// NewLeadBook создает журнал. Файл и лист создаются при первой записи.
func NewLeadBook(path, sheet string) *LeadBook {
	if sheet == "" {
		sheet = DefaultLeadSheet
	}
	return &LeadBook{path: path, sheet: sheet, tracer: otel.Tracer("xlsx-leads")}
}

// Append добавляет строку с заявкой. Заголовок создается, если лист пуст.
func (b *LeadBook) Append(ctx context.Context, sub model.Submission) error {
	_, span := b.tracer.Start(ctx, "LeadBook.Append")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, created, err := openOrCreate(b.path)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("xlsx", "open").Inc()
		return err
	}
	defer f.Close()

	rows, err := ensureSheet(f, b.sheet, created, LeadHeader)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("xlsx", "prepare").Inc()
		return err
	}

	cell, err := excelize.CoordinatesToCellName(1, rows+1)
	if err != nil {
		return fmt.Errorf("некорректный номер строки %d: %w", rows+1, err)
	}
	row := LeadRow(sub)
	if err := f.SetSheetRow(b.sheet, cell, &row); err != nil {
		metrics.StoreErrors.WithLabelValues("xlsx", "append").Inc()
		return fmt.Errorf("ошибка записи строки: %w", err)
	}

	if err := save(f, b.path, created); err != nil {
		metrics.StoreErrors.WithLabelValues("xlsx", "save").Inc()
		return err
	}

	log.WithFields(log.Fields{"submission": sub.ID, "row": rows + 1}).Debug("Заявка записана в XLSX")
	return nil
}

// LeadRow раскладывает заявку по колонкам LeadHeader.
func LeadRow(sub model.Submission) []interface{} {
	req := sub.Request
	var amount interface{} = ""
	if sub.Quote != nil {
		amount = sub.Quote.Amount
	}
	return []interface{}{
		sub.SubmittedAt.UTC().Format(timestampLayout),
		req.Company,
		req.ContactPerson,
		req.Email,
		req.Mobile,
		req.POL,
		req.POD,
		req.ReadyDate,
		req.Incoterm,
		req.PickupAddress,
		req.Commodity,
		sub.TotalCBM,
		req.GrossWeight,
		yesNo(req.Hazardous),
		yesNo(req.Customs),
		sub.PackageSummary(),
		sub.AttachmentNames(),
		sub.RequesterIP,
		amount,
		model.LeadStatus,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// openOrCreate открывает книгу или создает новую в памяти.
func openOrCreate(path string) (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("не удалось открыть %s: %w", path, err)
	}
	return excelize.NewFile(), true, nil
}

// ensureSheet создает лист с заголовком при необходимости
// и возвращает количество заполненных строк.
func ensureSheet(f *excelize.File, sheet string, created bool, header []string) (int, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return 0, fmt.Errorf("ошибка поиска листа %q: %w", sheet, err)
	}
	if idx == -1 {
		if idx, err = f.NewSheet(sheet); err != nil {
			return 0, fmt.Errorf("не удалось создать лист %q: %w", sheet, err)
		}
		if created && sheet != "Sheet1" {
			f.SetActiveSheet(idx)
			if err := f.DeleteSheet("Sheet1"); err != nil {
				return 0, fmt.Errorf("не удалось удалить лист по умолчанию: %w", err)
			}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения листа %q: %w", sheet, err)
	}
	if len(rows) > 0 {
		return len(rows), nil
	}

	if err := writeHeader(f, sheet, header); err != nil {
		return 0, err
	}
	return 1, nil
}

// writeHeader пишет жирный закрепленный заголовок.
func writeHeader(f *excelize.File, sheet string, header []string) error {
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("ошибка применения стиля: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("ошибка ширины колонок: %w", err)
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func save(f *excelize.File, path string, created bool) error {
	if !created {
		if err := f.Save(); err != nil {
			return fmt.Errorf("не удалось сохранить %s: %w", path, err)
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("не удалось сохранить %s: %w", path, err)
	}
	return nil
}
