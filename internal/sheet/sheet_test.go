package sheet

import (
	"context"
	"lcl_quote/internal/model"
	"lcl_quote/internal/quote"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func helperSubmission(id string, q *model.QuoteResult) model.Submission {
	return model.Submission{
		ID: id,
		Request: model.QuoteRequest{
			POL:         "AEJEA",
			POD:         "CNSHA",
			ReadyDate:   "2026-03-12",
			Incoterm:    "FOB",
			Commodity:   "Auto parts",
			Packages:    []model.Package{{ID: "1", Length: 100, Width: 80, Height: 60, Qty: 2}, {ID: "2", Length: 50, Width: 50, Height: 40, Qty: 1}},
			GrossWeight: 500,
			Hazardous:   true,
			Company:     "Acme Corp",
			Email:       "ops@acmecorp.com",
			Mobile:      "+971501234567",
			Attachments: []model.Attachment{{Name: "invoice.pdf"}, {Name: "photo.jpg"}},
		},
		TotalCBM:    1.06,
		RequesterIP: "203.0.113.7",
		SubmittedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Locale:      "en",
		Quote:       q,
	}
}

func readRows(t *testing.T, path, sheet string) [][]string {
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestLeadBook_AppendCreatesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads", "quote-leads.xlsx")
	book := NewLeadBook(path, "")
	ctx := context.Background()

	require.NoError(t, book.Append(ctx, helperSubmission("a", &model.QuoteResult{Amount: 48})))
	require.NoError(t, book.Append(ctx, helperSubmission("b", nil)))

	rows := readRows(t, path, DefaultLeadSheet)
	require.Len(t, rows, 3)
	assert.Equal(t, LeadHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "2026-03-10 09:00:00", first[0])
	assert.Equal(t, "Acme Corp", first[1])
	assert.Equal(t, "1.06", first[11])
	assert.Equal(t, "Yes", first[13])
	assert.Equal(t, "No", first[14])
	assert.Equal(t, "2x 100×80×60cm; 1x 50×50×40cm", first[15])
	assert.Equal(t, "invoice.pdf, photo.jpg", first[16])
	assert.Equal(t, "203.0.113.7", first[17])
	assert.Equal(t, "48", first[18])
	assert.Equal(t, "New", first[19])

	// Без котировки колонка пустая
	assert.Equal(t, "", rows[2][18])
}

func TestLeadBook_DefaultSheetRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, NewLeadBook(path, "").Append(context.Background(), helperSubmission("a", nil)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{DefaultLeadSheet}, f.GetSheetList())
}

func TestLeadBook_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	book := NewLeadBook(path, "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, book.Append(context.Background(), helperSubmission("x", nil)))
		}()
	}
	wg.Wait()

	assert.Len(t, readRows(t, path, DefaultLeadSheet), 9)
}

func TestLeadBook_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, NewLeadBook(path, "").Append(ctx, helperSubmission("a", nil)))
}

func TestRateBook_SeedAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, SeedRateBook(path, "", quote.DefaultRates))

	table, err := NewRateBook(path, "").Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.RateEntry(quote.DefaultRates), table)

	// Повторный вызов не перезаписывает файл
	require.NoError(t, SeedRateBook(path, "", nil))
	table, err = NewRateBook(path, "").Rates(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 4)
}

func TestRateBook_SkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet(DefaultRateSheet)
	require.NoError(t, err)
	rows := [][]interface{}{
		{"POL", "POD", "Rate USD/CBM", "Rate USD/Ton"},
		{"AEJEA", "DEHAM", 60, 48},
		{"AEJEA", "", 60, 48},
		{"AEJEA", "GBFXT", "n/a", 48},
		{"AEJEA"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(DefaultRateSheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewRateBook(path, "").Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.RateEntry{{OriginCode: "AEJEA", DestinationCode: "DEHAM", RatePerCBM: 60, RatePerTon: 48}}, table)
}

func TestRateBook_MissingFile(t *testing.T) {
	_, err := NewRateBook(filepath.Join(t.TempDir(), "none.xlsx"), "").Rates(context.Background())
	assert.Error(t, err)
}

func TestParseRateRow_Errors(t *testing.T) {
	rows := [][]string{
		{"AEJEA", "CNSHA", "45"},
		{"", "CNSHA", "45", "35"},
		{"AEJEA", "CNSHA", "n/a", "35"},
		{"AEJEA", "CNSHA", "45", "-"},
	}
	for _, row := range rows {
		_, err := parseRateRow(row)
		assert.ErrorIs(t, err, ErrBadRateRow, "%v", row)
	}

	entry, err := parseRateRow([]string{" AEJEA ", "CNSHA", "45", "35.5"})
	require.NoError(t, err)
	assert.Equal(t, model.RateEntry{OriginCode: "AEJEA", DestinationCode: "CNSHA", RatePerCBM: 45, RatePerTon: 35.5}, entry)
}
