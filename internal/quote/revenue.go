package quote

import (
	"lcl_quote/internal/model"
	"math"
)

// ResolveRevenueWeight выбирает расчетный вес: большее из объема (CBM)
// и массы в тоннах. При равенстве расчет идет по объему.
func ResolveRevenueWeight(totalVolume, grossWeightKg float64) (float64, model.ChargingBasis) {
	tons := grossWeightKg / 1000
	revenueWeight := math.Max(totalVolume, tons)
	if revenueWeight == totalVolume {
		return revenueWeight, model.ByVolume
	}
	return revenueWeight, model.ByWeight
}
