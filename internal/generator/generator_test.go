package generator

import (
	"lcl_quote/internal/i18n"
	"lcl_quote/internal/ports"
	"lcl_quote/internal/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteRequest_PassesValidation(t *testing.T) {
	directory, err := ports.Load("")
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := validator.New(directory, func() time.Time { return now })
	g := New(42, []string{"AEJEA", "CNSHA", "USNYC", "DEHAM"})

	for i := 0; i < 50; i++ {
		req := g.NewQuoteRequest(now)
		assert.NotEqual(t, req.POL, req.POD)
		assert.Empty(t, v.Validate(req, i18n.English), "заявка %d: %+v", i, req)
	}
}

func TestNewQuoteRequest_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	codes := []string{"AEJEA", "CNSHA"}

	a := New(7, codes).NewQuoteRequest(now)
	b := New(7, codes).NewQuoteRequest(now)

	assert.Equal(t, a.Company, b.Company)
	assert.Equal(t, a.Email, b.Email)
	assert.Equal(t, a.GrossWeight, b.GrossWeight)
}

func TestLettersOnly(t *testing.T) {
	assert.Equal(t, "acmecorp", lettersOnly("Acme Corp.", "x"))
	assert.Equal(t, "x", lettersOnly("123 &", "x"))
}
