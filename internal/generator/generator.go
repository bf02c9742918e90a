package generator

import (
	"fmt"
	"lcl_quote/internal/model"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var incoterms = []string{"EXW", "FCA", "FOB", "CPT", "CIF", "DAP", "DDP"}

// Generator создает случайные, но корректные заявки на котировку.
type Generator struct {
	faker *gofakeit.Faker
	ports []string
}

// New создает генератор. seed = 0 - случайная последовательность.
// ports - коды портов, из которых выбираются POL и POD (нужно минимум два).
func New(seed int64, ports []string) *Generator {
	return &Generator{faker: gofakeit.New(seed), ports: ports}
}

// NewQuoteRequest создает одну заявку с датой готовности не раньше now.
func (g *Generator) NewQuoteRequest(now time.Time) model.QuoteRequest {
	f := g.faker

	// 1. Маршрут из двух разных портов
	pol := f.RandomString(g.ports)
	pod := pol
	for pod == pol {
		pod = f.RandomString(g.ports)
	}

	// 2. Грузовые места
	var packages []model.Package
	count := f.Number(1, 4)
	for i := 0; i < count; i++ {
		packages = append(packages, model.Package{
			ID:     uuid.New().String(),
			Length: float64(f.Number(20, 240)),
			Width:  float64(f.Number(20, 200)),
			Height: float64(f.Number(20, 180)),
			Qty:    f.Number(1, 10),
		})
	}

	// 3. Контакты. Почта всегда на домене компании
	company := f.Company()
	first := lettersOnly(f.FirstName(), "contact")
	contact := first + " " + f.LastName()
	email := fmt.Sprintf("%s@%s.com", first, lettersOnly(company, "example"))

	// Адрес заполняется всегда, для EXW/FCA/DAP/DDP он обязателен
	addr := f.Address()

	return model.QuoteRequest{
		POL:           pol,
		POD:           pod,
		ReadyDate:     now.AddDate(0, 0, f.Number(0, 30)).Format("2006-01-02"),
		Incoterm:      f.RandomString(incoterms),
		PickupAddress: fmt.Sprintf("%s, %s", addr.Address, addr.City),
		Commodity:     f.ProductName(),
		Packages:      packages,
		GrossWeight:   float64(f.Number(50, 5000)),
		Hazardous:     f.Number(1, 10) == 1,
		Customs:       f.Bool(),
		Company:       company,
		ContactPerson: contact,
		Email:         email,
		Mobile:        fmt.Sprintf("+971 5%d %03d %04d", f.Number(0, 9), f.Number(0, 999), f.Number(0, 9999)),
		Locale:        f.RandomString([]string{"en", "ar"}),
	}
}

// lettersOnly оставляет латинские буквы в нижнем регистре.
func lettersOnly(s, fallback string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}
