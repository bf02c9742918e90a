package quote

import (
	"lcl_quote/internal/model"
	"math"
)

// cm³ в одном кубометре.
const cubicCMPerCBM = 1_000_000

// PackageVolume возвращает объем группы мест в CBM, округленный до 3 знаков.
// Если хотя бы один параметр не положителен, объем равен нулю.
func PackageVolume(length, width, height float64, qty int) float64 {
	if !(length > 0) || !(width > 0) || !(height > 0) || qty <= 0 {
		return 0
	}
	return round3(length * width * height * float64(qty) / cubicCMPerCBM)
}

// TotalVolume суммирует объемы всех мест.
func TotalVolume(packages []model.Package) float64 {
	var total float64
	for _, p := range packages {
		total += PackageVolume(p.Length, p.Width, p.Height, p.Qty)
	}
	return round3(total)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
