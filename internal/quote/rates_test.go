package quote

import (
	"context"
	"lcl_quote/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRate(t *testing.T) {
	entry, ok := FindRate("CNSHA", "AEJEA", DefaultRates)
	require.True(t, ok)
	assert.Equal(t, 42.0, entry.RatePerCBM)
	assert.Equal(t, 32.0, entry.RatePerTon)

	// Регистр учитывается
	_, ok = FindRate("cnsha", "AEJEA", DefaultRates)
	assert.False(t, ok)

	// Направление не симметрично
	_, ok = FindRate("AEJEA", "DEHAM", DefaultRates)
	assert.False(t, ok)

	_, ok = FindRate("AEJEA", "CNSHA", nil)
	assert.False(t, ok)
}

func TestFallback_Entry(t *testing.T) {
	entry := DefaultFallback.Entry("AEJEA", "DEHAM")
	assert.Equal(t, model.RateEntry{OriginCode: "AEJEA", DestinationCode: "DEHAM", RatePerCBM: 45, RatePerTon: 35}, entry)
}

func TestStaticRates_ReturnsCopy(t *testing.T) {
	table, err := DefaultRates.Rates(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 4)

	table[0].RatePerCBM = 1
	assert.Equal(t, 45.0, DefaultRates[0].RatePerCBM)
}
