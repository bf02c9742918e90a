package model

// ChargingBasis - основание расчета фрахта.
type ChargingBasis string

const (
	ByVolume ChargingBasis = "volume"
	ByWeight ChargingBasis = "weight"
)

// RateEntry - ставка для пары портов.
type RateEntry struct {
	OriginCode      string  `json:"originCode" db:"origin_code"`
	DestinationCode string  `json:"destinationCode" db:"destination_code"`
	RatePerCBM      float64 `json:"ratePerCBM" db:"rate_per_cbm"`
	RatePerTon      float64 `json:"ratePerTon" db:"rate_per_ton"`
}

// QuoteResult - индикативная котировка в USD.
type QuoteResult struct {
	RevenueWeight float64       `json:"revenueWeight"`
	ChargingBasis ChargingBasis `json:"chargingBasis"`
	UnitRate      float64       `json:"unitRate"`
	Amount        int64         `json:"amount"`
	Fallback      bool          `json:"fallback"`
}

// Port - запись справочника портов.
type Port struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Code    string `json:"code"`
}
