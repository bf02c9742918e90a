package main

import (
	"context"
	"errors"
	"lcl_quote/internal/config"
	"lcl_quote/internal/model"
	"lcl_quote/internal/quote"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpserter struct {
	rates []model.RateEntry
	err   error
}

func (f *fakeUpserter) UpsertRate(_ context.Context, rate model.RateEntry) error {
	if f.err != nil {
		return f.err
	}
	f.rates = append(f.rates, rate)
	return nil
}

func testConfig(t *testing.T, source string) *config.Config {
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Quote.RatesSource = source
	cfg.Quote.RatesFile = filepath.Join(t.TempDir(), "rates.xlsx")
	return cfg
}

func TestSetupRates_Static(t *testing.T) {
	rates, err := setupRates(context.Background(), testConfig(t, "static"), nil)
	require.NoError(t, err)

	table, err := rates.Rates(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, len(quote.DefaultRates))
}

func TestSetupRates_SeedsRateBook(t *testing.T) {
	rates, err := setupRates(context.Background(), testConfig(t, "xlsx"), nil)
	require.NoError(t, err)

	table, err := rates.Rates(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.RateEntry(quote.DefaultRates), table)
}

func TestSetupRates_ImportWithoutPostgres(t *testing.T) {
	cfg := testConfig(t, "static")
	cfg.Quote.ImportRates = true

	_, err := setupRates(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestImportRates(t *testing.T) {
	to := &fakeUpserter{}
	require.NoError(t, importRates(context.Background(), quote.DefaultRates, to))
	assert.Len(t, to.rates, len(quote.DefaultRates))

	assert.Error(t, importRates(context.Background(), quote.DefaultRates, &fakeUpserter{err: errors.New("db down")}))
}
