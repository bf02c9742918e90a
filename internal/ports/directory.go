package ports

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"lcl_quote/internal/model"
	"os"
)

//go:embed data/ports.json
var defaultPorts []byte

// Directory - справочник портов только для чтения.
type Directory struct {
	ports  []model.Port
	byCode map[string]model.Port
}

// NewDirectory строит справочник из списка портов.
func NewDirectory(ports []model.Port) *Directory {
	d := &Directory{
		ports:  ports,
		byCode: make(map[string]model.Port, len(ports)),
	}
	for _, p := range ports {
		d.byCode[p.Code] = p
	}
	return d
}

// Load читает справочник из JSON-файла. Пустой путь - встроенный список.
func Load(path string) (*Directory, error) {
	raw := defaultPorts
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать справочник портов: %w", err)
		}
		raw = data
	}

	var list []model.Port
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("некорректный справочник портов: %w", err)
	}
	return NewDirectory(list), nil
}

// Has проверяет, есть ли порт с таким кодом.
func (d *Directory) Has(code string) bool {
	_, ok := d.byCode[code]
	return ok
}

// Lookup возвращает порт по коду.
func (d *Directory) Lookup(code string) (model.Port, bool) {
	p, ok := d.byCode[code]
	return p, ok
}

// All возвращает все порты в исходном порядке.
func (d *Directory) All() []model.Port {
	return d.ports
}
