package validator

import (
	"errors"
	"fmt"
	"lcl_quote/internal/i18n"
	"lcl_quote/internal/model"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getInstance возвращает синглтон-экземпляр валидатора без доменных правил.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateStruct выполняет валидацию по тегам структуры.
func ValidateStruct(s interface{}) error {
	return getInstance().Struct(s)
}

// Домены личной почты, с которых заявки не принимаются.
var personalDomains = map[string]struct{}{
	"gmail.com":      {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"icloud.com":     {},
	"protonmail.com": {},
}

// Инкотермс, при которых забор груза выполняет экспедитор.
var pickupIncoterms = map[string]struct{}{
	"EXW": {},
	"FCA": {},
	"DAP": {},
	"DDP": {},
}

var mobilePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)

const minMobileDigits = 10

// PortChecker - справочник портов, по которому проверяются коды.
type PortChecker interface {
	Has(code string) bool
}

// Validator проверяет заявку целиком и возвращает ошибки по полям.
// Один экземпляр обслуживает и предварительную проверку формы, и конвейер.
type Validator struct {
	validate *validator.Validate
	ports    PortChecker
	now      func() time.Time
}

// New создает валидатор. ports может быть nil - тогда коды портов не сверяются.
func New(ports PortChecker, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{
		validate: validator.New(),
		ports:    ports,
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"company_email":   companyEmail,
		"mobile":          mobile,
		"notblank":        validators.NotBlank,
		"not_past":        v.notPast,
		"port_code":       v.portCode,
		"valid_packages":  validPackages,
		"attachment_type": attachmentType,
	}
	for tag, fn := range rules {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("не удалось зарегистрировать правило %s: %v", tag, err))
		}
	}
	v.validate.RegisterStructValidation(pickupAddressRule, model.QuoteRequest{})

	return v
}

// Validate проверяет все поля за один проход. Пустой результат - заявка корректна.
func (v *Validator) Validate(req model.QuoteRequest, locale i18n.Locale) map[string]string {
	return translate(v.validate.Struct(req), locale)
}

// CheckAttachment проверяет файл в момент выбора. Пустая строка - файл допустим.
func (v *Validator) CheckAttachment(att model.Attachment, locale i18n.Locale) string {
	for _, msg := range translate(v.validate.Struct(att), locale) {
		return msg
	}
	return ""
}

// translate превращает ошибки валидатора в сообщения по полям.
// Для каждого поля сохраняется первая ошибка.
func translate(err error, locale i18n.Locale) map[string]string {
	result := make(map[string]string)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result["form"] = i18n.T(locale, "form.invalid", nil)
		return result
	}

	for _, fe := range fieldErrs {
		key := fieldKey(fe.Namespace())
		if _, exists := result[key]; exists {
			continue
		}
		result[key] = i18n.T(locale, messageKey(fe), nil)
	}
	return result
}

// fieldKey: "QuoteRequest.attachments[0].size" -> "attachments".
func fieldKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexAny(namespace, ".["); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}

func messageKey(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_for_incoterm", "notblank", "gt":
		return "form.required"
	case "email":
		return "form.invalidEmailFormat"
	case "company_email":
		return "form.invalidEmail"
	case "mobile":
		return "form.invalidMobile"
	case "datetime":
		return "form.invalidDate"
	case "not_past":
		return "form.pastDate"
	case "oneof":
		return "form.invalidIncoterm"
	case "port_code":
		return "form.unknownPort"
	case "valid_packages":
		return "form.packagesRequired"
	case "attachment_type":
		return "form.attachmentType"
	case "lte":
		switch fe.Field() {
		case "size":
			return "form.attachmentSize"
		case "grossWeight":
			return "form.weightTooHigh"
		}
	}
	return "form.invalid"
}

func companyEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	_, personal := personalDomains[strings.ToLower(email[at+1:])]
	return !personal
}

func mobile(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if !mobilePattern.MatchString(value) {
		return false
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minMobileDigits
}

// notPast сравнивает только даты, без времени, в часовом поясе сервиса.
func (v *Validator) notPast(fl validator.FieldLevel) bool {
	now := v.now()
	ready, err := time.ParseInLocation(time.DateOnly, fl.Field().String(), now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !ready.Before(today)
}

func (v *Validator) portCode(fl validator.FieldLevel) bool {
	if v.ports == nil {
		return true
	}
	return v.ports.Has(fl.Field().String())
}

// validPackages требует хотя бы одно место со всеми размерами и количеством.
func validPackages(fl validator.FieldLevel) bool {
	packages, ok := fl.Field().Interface().([]model.Package)
	if !ok {
		return false
	}
	for _, p := range packages {
		if p.Length > 0 && p.Width > 0 && p.Height > 0 && p.Qty > 0 {
			return true
		}
	}
	return false
}

func pickupAddressRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.QuoteRequest)
	if _, needed := pickupIncoterms[req.Incoterm]; needed && strings.TrimSpace(req.PickupAddress) == "" {
		sl.ReportError(req.PickupAddress, "pickupAddress", "PickupAddress", "required_for_incoterm", "")
	}
}
