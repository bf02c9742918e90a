package notify

import (
	"bytes"
	"fmt"
	"lcl_quote/internal/i18n"
	"lcl_quote/internal/model"
	"lcl_quote/internal/quote"
	"strconv"
	"time"
)

// PortNames - справочник, по которому коды портов превращаются в названия.
type PortNames interface {
	Lookup(code string) (model.Port, bool)
}

// Renderer собирает письма клиенту и в отдел продаж по заявке.
type Renderer struct {
	customerFrom string
	systemFrom   string
	opsMailbox   string
	ports        PortNames
}

// NewRenderer создает сборщик писем с адресами отправителей.
func NewRenderer(customerFrom, systemFrom, opsMailbox string) *Renderer {
	return &Renderer{customerFrom: customerFrom, systemFrom: systemFrom, opsMailbox: opsMailbox}
}

// WithPorts подключает справочник портов: в письме отделу продаж маршрут
// показывается как "Jebel Ali (AEJEA)". Без справочника остаются коды.
func (r *Renderer) WithPorts(ports PortNames) *Renderer {
	r.ports = ports
	return r
}

func (r *Renderer) portLabel(code string) string {
	if r.ports == nil {
		return code
	}
	p, ok := r.ports.Lookup(code)
	if !ok || p.Name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", p.Name, code)
}

// Render возвращает два письма: клиенту (на его языке) и в операционный ящик.
func (r *Renderer) Render(sub model.Submission) ([]Message, error) {
	customer, err := r.customer(sub)
	if err != nil {
		return nil, err
	}
	operations, err := r.operations(sub)
	if err != nil {
		return nil, err
	}
	return []Message{customer, operations}, nil
}

func (r *Renderer) customer(sub model.Submission) (Message, error) {
	locale := i18n.Parse(sub.Locale)
	req := sub.Request
	params := map[string]string{"pol": req.POL, "pod": req.POD}

	name := req.ContactPerson
	if name == "" {
		name = i18n.T(locale, "email.customer.valuedCustomer", nil)
	}

	data := struct {
		Lang, Dir, Title, Greeting, QuoteLine, NoQuoteLine, DetailsTitle string
		FollowUp, Signature, Team                                         string
		HasQuote                                                          bool
		Labels                                                            struct{ Route, ReadyDate, Incoterm, TotalCBM, GrossWeight, Commodity string }
		POL, POD, ReadyDate, Incoterm, TotalCBM, GrossWeight, Commodity   string
	}{
		Lang:         string(locale),
		Dir:          "ltr",
		Title:        i18n.T(locale, "email.customer.title", nil),
		Greeting:     i18n.T(locale, "email.customer.greeting", map[string]string{"name": name}),
		NoQuoteLine:  i18n.T(locale, "email.customer.noQuote", nil),
		DetailsTitle: i18n.T(locale, "email.details", nil),
		FollowUp:     i18n.T(locale, "email.customer.followUp", nil),
		Signature:    i18n.T(locale, "email.customer.signature", nil),
		Team:         i18n.T(locale, "email.customer.team", nil),
		POL:          req.POL,
		POD:          req.POD,
		ReadyDate:    req.ReadyDate,
		Incoterm:     req.Incoterm,
		TotalCBM:     formatFloat(sub.TotalCBM),
		GrossWeight:  formatFloat(req.GrossWeight),
		Commodity:    req.Commodity,
	}
	if locale.RTL() {
		data.Dir = "rtl"
	}
	data.Labels.Route = i18n.T(locale, "email.route", nil)
	data.Labels.ReadyDate = i18n.T(locale, "email.readyDate", nil)
	data.Labels.Incoterm = i18n.T(locale, "email.incoterm", nil)
	data.Labels.TotalCBM = i18n.T(locale, "email.totalCBM", nil)
	data.Labels.GrossWeight = i18n.T(locale, "email.grossWeight", nil)
	data.Labels.Commodity = i18n.T(locale, "email.commodity", nil)

	subject := i18n.T(locale, "email.customer.subjectNoQuote", params)
	if sub.Quote != nil {
		params["amount"] = strconv.FormatInt(sub.Quote.Amount, 10)
		data.HasQuote = true
		data.QuoteLine = i18n.T(locale, "email.customer.quote", params)
		subject = i18n.T(locale, "email.customer.subjectQuote", params)
	}

	var body bytes.Buffer
	if err := customerTemplate.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("ошибка сборки письма клиенту: %w", err)
	}

	return Message{
		SubmissionID: sub.ID,
		Kind:         KindCustomer,
		From:         r.customerFrom,
		To:           []string{req.Email},
		Subject:      subject,
		HTML:         body.String(),
	}, nil
}

type packageLine struct {
	Qty                         int
	Length, Width, Height, CBM string
}

func (r *Renderer) operations(sub model.Submission) (Message, error) {
	req := sub.Request
	lines := make([]packageLine, 0, len(req.Packages))
	for _, p := range req.Packages {
		lines = append(lines, packageLine{
			Qty:    p.Qty,
			Length: formatFloat(p.Length),
			Width:  formatFloat(p.Width),
			Height: formatFloat(p.Height),
			CBM:    formatFloat(quote.PackageVolume(p.Length, p.Width, p.Height, p.Qty)),
		})
	}

	data := struct {
		model.QuoteRequest
		ID, Contact, TotalCBM, GrossWeight, UserIP, Timestamp, Attachments string
		From, To                                                            string
		HasQuote, Fallback                                                  bool
		Amount                                                              int64
		Basis, UnitRate                                                     string
		Packages                                                            []packageLine
	}{
		QuoteRequest: req,
		ID:           sub.ID,
		From:         r.portLabel(req.POL),
		To:           r.portLabel(req.POD),
		Contact:      req.ContactPerson,
		TotalCBM:     formatFloat(sub.TotalCBM),
		GrossWeight:  formatFloat(req.GrossWeight),
		UserIP:       sub.RequesterIP,
		Timestamp:    sub.SubmittedAt.UTC().Format(time.RFC3339),
		Attachments:  sub.AttachmentNames(),
		Packages:     lines,
	}
	subject := fmt.Sprintf("New LCL Quote: %s - %s to %s", req.Company, req.POL, req.POD)
	if sub.Quote != nil {
		data.HasQuote = true
		data.Amount = sub.Quote.Amount
		data.Basis = string(sub.Quote.ChargingBasis)
		data.UnitRate = formatFloat(sub.Quote.UnitRate)
		data.Fallback = sub.Quote.Fallback
	}

	var body bytes.Buffer
	if err := operationsTemplate.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("ошибка сборки письма в отдел продаж: %w", err)
	}

	return Message{
		SubmissionID: sub.ID,
		Kind:         KindOperations,
		From:         r.systemFrom,
		To:           []string{r.opsMailbox},
		ReplyTo:      req.Email,
		Subject:      subject,
		HTML:         body.String(),
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
