package validator

import (
	"lcl_quote/internal/model"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// MaxAttachmentSize - 10 MiB.
const MaxAttachmentSize = 10 << 20

// Разрешенные типы вложений по расширению.
var allowedTypes = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var allowedMIME = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		set[t] = struct{}{}
	}
	return set
}()

// Форматы, которые хранятся внутри контейнера и определяются только по расширению.
var containerFormats = map[string][]string{
	"application/x-ole-storage": {"doc", "xls"},
	"application/zip":           {"docx", "xlsx"},
}

// DetectContentType определяет тип файла по содержимому.
// Контейнеры OLE и ZIP уточняются по расширению, только если оно
// обозначает формат этого же контейнера: zip с именем invoice.pdf
// остается application/zip.
func DetectContentType(name string, head []byte) string {
	detected := mimetype.Detect(head)
	ext := model.Attachment{Name: name}.Extension()
	for container, exts := range containerFormats {
		if !detected.Is(container) {
			continue
		}
		for _, e := range exts {
			if e == ext {
				return allowedTypes[ext]
			}
		}
	}
	return detected.String()
}

// AllowedAttachment сообщает, допустим ли тип вложения.
// Без известного типа решение принимается по расширению.
func AllowedAttachment(att model.Attachment) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(att.ContentType, ";", 2)[0]))
	if ct == "" || ct == "application/octet-stream" {
		_, ok := allowedTypes[att.Extension()]
		return ok
	}
	_, ok := allowedMIME[ct]
	return ok
}

func attachmentType(fl validator.FieldLevel) bool {
	att, ok := fl.Parent().Interface().(model.Attachment)
	if !ok {
		return false
	}
	return AllowedAttachment(att)
}
