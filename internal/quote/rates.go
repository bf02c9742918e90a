package quote

import (
	"context"
	"lcl_quote/internal/model"
)

// FindRate ищет ставку по точному (с учетом регистра) совпадению пары портов.
func FindRate(origin, destination string, table []model.RateEntry) (model.RateEntry, bool) {
	for _, entry := range table {
		if entry.OriginCode == origin && entry.DestinationCode == destination {
			return entry, true
		}
	}
	return model.RateEntry{}, false
}

// Fallback - ставка по умолчанию для направлений, которых нет в таблице.
type Fallback struct {
	Enabled bool
	PerCBM  float64
	PerTon  float64
}

// DefaultFallback - 45 USD/CBM и 35 USD/т.
var DefaultFallback = Fallback{Enabled: true, PerCBM: 45, PerTon: 35}

// Entry строит ставку по умолчанию для пары портов.
func (f Fallback) Entry(origin, destination string) model.RateEntry {
	return model.RateEntry{
		OriginCode:      origin,
		DestinationCode: destination,
		RatePerCBM:      f.PerCBM,
		RatePerTon:      f.PerTon,
	}
}

// StaticRates - таблица ставок, заданная в коде.
type StaticRates []model.RateEntry

// Rates возвращает копию таблицы.
func (s StaticRates) Rates(ctx context.Context) ([]model.RateEntry, error) {
	table := make([]model.RateEntry, len(s))
	copy(table, s)
	return table, nil
}

// DefaultRates - базовая матрица ставок по основным направлениям.
var DefaultRates = StaticRates{
	{OriginCode: "AEJEA", DestinationCode: "CNSHA", RatePerCBM: 45, RatePerTon: 35},
	{OriginCode: "CNSHA", DestinationCode: "AEJEA", RatePerCBM: 42, RatePerTon: 32},
	{OriginCode: "AEJEA", DestinationCode: "USNYC", RatePerCBM: 55, RatePerTon: 45},
	{OriginCode: "USNYC", DestinationCode: "AEJEA", RatePerCBM: 52, RatePerTon: 42},
}
