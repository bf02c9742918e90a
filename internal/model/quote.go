package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Package - одна строка таблицы грузовых мест (размеры в сантиметрах).
type Package struct {
	ID     string  `json:"id"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Qty    int     `json:"qty"`
}

// Attachment - метаданные приложенного файла. Содержимое файла сервис не хранит.
type Attachment struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"contentType" validate:"attachment_type"`
	Size        int64  `json:"size" validate:"gte=0,lte=10485760"`
}

// UnmarshalJSON принимает как объект, так и строку с именем файла.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Attachment{Name: name}
		return nil
	}

	type plain Attachment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("некорректное вложение: %w", err)
	}
	*a = Attachment(p)
	return nil
}

// Extension возвращает расширение файла без точки в нижнем регистре.
func (a Attachment) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Name)), ".")
}

// QuoteRequest - заявка на LCL-котировку в том виде, в котором её прислала форма.
type QuoteRequest struct {
	POL           string       `json:"pol" validate:"required,port_code"`
	POD           string       `json:"pod" validate:"required,port_code"`
	ReadyDate     string       `json:"readyDate" validate:"required,datetime=2006-01-02,not_past"`
	Incoterm      string       `json:"incoterm" validate:"required,oneof=EXW FCA FOB CPT CIF DAP DDP"`
	PickupAddress string       `json:"pickupAddress"`
	Commodity     string       `json:"commodity" validate:"required,notblank"`
	Packages      []Package    `json:"packages" validate:"valid_packages"`
	GrossWeight   float64      `json:"grossWeight" validate:"gt=0,lte=1000000"`
	Hazardous     bool         `json:"hazardous"`
	Customs       bool         `json:"customs"`
	Attachments   []Attachment `json:"attachments" validate:"dive"`
	Company       string       `json:"company" validate:"required,notblank"`
	ContactPerson string       `json:"contactPerson"`
	Email         string       `json:"email" validate:"required,email,company_email"`
	Mobile        string       `json:"mobile" validate:"required,mobile"`
	UserIP        string       `json:"userIP,omitempty"`
	Locale        string       `json:"locale,omitempty"`
}

// Submission - принятая заявка вместе с вычисленными полями.
// Создается один раз в конвейере и дальше не изменяется.
type Submission struct {
	ID          string       `json:"id"`
	Request     QuoteRequest `json:"request"`
	TotalCBM    float64      `json:"totalCBM"`
	RequesterIP string       `json:"requesterIP"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Locale      string       `json:"locale"`
	Quote       *QuoteResult `json:"quote,omitempty"`
}

// LeadStatus - статус новой строки в журнале заявок.
const LeadStatus = "New"

// PackageSummary возвращает краткое описание мест: "2x 100×80×60cm; 1x 50×50×50cm".
func (s Submission) PackageSummary() string {
	parts := make([]string, 0, len(s.Request.Packages))
	for _, p := range s.Request.Packages {
		parts = append(parts, fmt.Sprintf("%dx %s×%s×%scm", p.Qty, formatDim(p.Length), formatDim(p.Width), formatDim(p.Height)))
	}
	return strings.Join(parts, "; ")
}

// AttachmentNames возвращает имена вложений через запятую.
func (s Submission) AttachmentNames() string {
	names := make([]string, 0, len(s.Request.Attachments))
	for _, a := range s.Request.Attachments {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func formatDim(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
