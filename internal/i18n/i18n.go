package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale - язык ответа пользователю.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// Parse приводит явно заданный язык к поддерживаемому, по умолчанию английский.
func Parse(value string) Locale {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return English
	}
	return match(tag)
}

// FromAcceptLanguage выбирает язык по заголовку Accept-Language.
func FromAcceptLanguage(header string) Locale {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return English
	}
	return match(tags...)
}

// Negotiate: явный язык заявки важнее заголовка.
func Negotiate(explicit, acceptLanguage string) Locale {
	if strings.TrimSpace(explicit) != "" {
		return Parse(explicit)
	}
	return FromAcceptLanguage(acceptLanguage)
}

func match(tags ...language.Tag) Locale {
	tag, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return English
	}
	base, _ := tag.Base()
	if base.String() == string(Arabic) {
		return Arabic
	}
	return English
}

// RTL сообщает, пишется ли язык справа налево.
func (l Locale) RTL() bool {
	return l == Arabic
}

// T возвращает перевод ключа с подстановкой параметров вида {{name}}.
// Если перевода нет, используется английский текст, затем сам ключ.
func T(l Locale, key string, params map[string]string) string {
	text, ok := catalog[l][key]
	if !ok {
		text, ok = catalog[English][key]
	}
	if !ok {
		return key
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	return text
}
