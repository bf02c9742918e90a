package quote

import (
	"errors"
	"lcl_quote/internal/model"
	"math"
)

// ErrNoRate - для направления нет ставки, а ставка по умолчанию отключена.
var ErrNoRate = errors.New("нет ставки для направления")

// CalculateQuote считает фрахт: расчетный вес на ставку по выбранному основанию,
// с округлением половины вверх до целого доллара.
func CalculateQuote(revenueWeight float64, basis model.ChargingBasis, rate *model.RateEntry) (model.QuoteResult, error) {
	if rate == nil {
		return model.QuoteResult{}, ErrNoRate
	}

	unitRate := rate.RatePerCBM
	if basis == model.ByWeight {
		unitRate = rate.RatePerTon
	}

	return model.QuoteResult{
		RevenueWeight: revenueWeight,
		ChargingBasis: basis,
		UnitRate:      unitRate,
		Amount:        int64(math.Floor(revenueWeight*unitRate + 0.5)),
	}, nil
}

// Quoter связывает поиск ставки, политику ставки по умолчанию и расчет.
type Quoter struct {
	fallback Fallback
}

// NewQuoter создает калькулятор с заданной политикой ставки по умолчанию.
func NewQuoter(fallback Fallback) *Quoter {
	return &Quoter{fallback: fallback}
}

// Quote рассчитывает котировку для направления по таблице ставок.
func (q *Quoter) Quote(origin, destination string, totalCBM, grossWeightKg float64, table []model.RateEntry) (model.QuoteResult, error) {
	revenueWeight, basis := ResolveRevenueWeight(totalCBM, grossWeightKg)

	var rate *model.RateEntry
	usedFallback := false
	if entry, ok := FindRate(origin, destination, table); ok {
		rate = &entry
	} else if q.fallback.Enabled {
		entry := q.fallback.Entry(origin, destination)
		rate = &entry
		usedFallback = true
	}

	result, err := CalculateQuote(revenueWeight, basis, rate)
	if err != nil {
		return model.QuoteResult{}, err
	}
	result.Fallback = usedFallback
	return result, nil
}
