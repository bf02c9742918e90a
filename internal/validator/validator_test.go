package validator

import (
	"lcl_quote/internal/i18n"
	"lcl_quote/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type portSet map[string]bool

func (p portSet) Has(code string) bool { return p[code] }

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(portSet{"AEJEA": true, "CNSHA": true}, func() time.Time { return testNow })
}

// validRequest - корректная заявка AEJEA -> CNSHA
func validRequest() model.QuoteRequest {
	return model.QuoteRequest{
		POL:         "AEJEA",
		POD:         "CNSHA",
		ReadyDate:   "2026-03-10",
		Incoterm:    "FOB",
		Commodity:   "Auto parts",
		Packages:    []model.Package{{ID: "1", Length: 100, Width: 80, Height: 60, Qty: 2}},
		GrossWeight: 500,
		Company:     "Acme Corp",
		Email:       "ops@acmecorp.com",
		Mobile:      "+971501234567",
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, newTestValidator().Validate(validRequest(), i18n.English))
}

func TestValidate_ReportsAllErrorsAtOnce(t *testing.T) {
	req := validRequest()
	req.Email = ""
	req.ReadyDate = "2026-03-09"

	errs := newTestValidator().Validate(req, i18n.English)
	assert.Len(t, errs, 2)
	assert.Equal(t, "This field is required", errs["email"])
	assert.Equal(t, "Ready date must be today or later", errs["readyDate"])
}

func TestValidate_EmptyRequest(t *testing.T) {
	errs := newTestValidator().Validate(model.QuoteRequest{}, i18n.English)
	for _, field := range []string{"pol", "pod", "readyDate", "incoterm", "commodity", "packages", "grossWeight", "company", "email", "mobile"} {
		assert.Contains(t, errs, field)
	}
	// Инкотермс не задан - адрес забора не требуется
	assert.NotContains(t, errs, "pickupAddress")
}

func TestValidate_PersonalEmail(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.Email = "user@gmail.com"
	errs := v.Validate(req, i18n.English)
	assert.Equal(t, map[string]string{"email": "Please use your company email"}, errs)

	req.Email = "User@GMAIL.com"
	assert.Contains(t, v.Validate(req, i18n.English), "email")

	req.Email = "not-an-email"
	assert.Equal(t, "Please enter a valid email address", v.Validate(req, i18n.English)["email"])

	req.Email = "ops@acmecorp.com"
	assert.Empty(t, v.Validate(req, i18n.English))
}

func TestValidate_PickupAddress(t *testing.T) {
	v := newTestValidator()

	for _, incoterm := range []string{"EXW", "FCA", "DAP", "DDP"} {
		req := validRequest()
		req.Incoterm = incoterm
		assert.Contains(t, v.Validate(req, i18n.English), "pickupAddress", incoterm)

		req.PickupAddress = "Warehouse 7, JAFZA"
		assert.Empty(t, v.Validate(req, i18n.English), incoterm)
	}

	for _, incoterm := range []string{"FOB", "CPT", "CIF"} {
		req := validRequest()
		req.Incoterm = incoterm
		assert.Empty(t, v.Validate(req, i18n.English), incoterm)
	}

	req := validRequest()
	req.Incoterm = "XYZ"
	assert.Equal(t, "Please select a valid incoterm", v.Validate(req, i18n.English)["incoterm"])
}

func TestValidate_Packages(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.Packages = nil
	assert.Contains(t, v.Validate(req, i18n.English), "packages")

	req.Packages = []model.Package{{Length: 100, Width: 0, Height: 60, Qty: 1}}
	assert.Contains(t, v.Validate(req, i18n.English), "packages")

	// Достаточно одного полного места
	req.Packages = append(req.Packages, model.Package{Length: 10, Width: 10, Height: 10, Qty: 1})
	assert.Empty(t, v.Validate(req, i18n.English))
}

func TestValidate_ReadyDate(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.ReadyDate = "2026-12-31"
	assert.Empty(t, v.Validate(req, i18n.English))

	req.ReadyDate = "10/03/2026"
	assert.Equal(t, "Please enter a valid date", v.Validate(req, i18n.English)["readyDate"])
}

func TestValidate_Mobile(t *testing.T) {
	v := newTestValidator()

	for _, good := range []string{"+971501234567", "050 123 4567", "(050) 123-4567"} {
		req := validRequest()
		req.Mobile = good
		assert.Empty(t, v.Validate(req, i18n.English), good)
	}

	for _, bad := range []string{"12345", "+97150abc4567", "-- -- -- --"} {
		req := validRequest()
		req.Mobile = bad
		assert.Contains(t, v.Validate(req, i18n.English), "mobile", bad)
	}
}

func TestValidate_UnknownPort(t *testing.T) {
	req := validRequest()
	req.POD = "XXXXX"
	errs := newTestValidator().Validate(req, i18n.English)
	assert.Equal(t, map[string]string{"pod": "Please select a port from the list"}, errs)

	// Без справочника коды не сверяются
	assert.Empty(t, New(nil, func() time.Time { return testNow }).Validate(req, i18n.English))
}

func TestValidate_Arabic(t *testing.T) {
	req := validRequest()
	req.Company = ""
	errs := newTestValidator().Validate(req, i18n.Arabic)
	assert.Equal(t, "هذا الحقل مطلوب", errs["company"])
}

func TestValidate_Attachments(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.Attachments = []model.Attachment{
		{Name: "packing-list.pdf", ContentType: "application/pdf", Size: 2048},
		{Name: "photo.JPG"},
	}
	assert.Empty(t, v.Validate(req, i18n.English))

	req.Attachments = append(req.Attachments, model.Attachment{Name: "setup.exe", ContentType: "application/x-msdownload", Size: 10})
	errs := v.Validate(req, i18n.English)
	require.Contains(t, errs, "attachments")
	assert.Equal(t, "Allowed file types: PDF, DOC, DOCX, JPG, PNG, XLS, XLSX", errs["attachments"])
}

func TestCheckAttachment(t *testing.T) {
	v := newTestValidator()

	assert.Empty(t, v.CheckAttachment(model.Attachment{Name: "rates.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Size: 1024}, i18n.English))
	assert.Empty(t, v.CheckAttachment(model.Attachment{Name: "scan.png", ContentType: "application/octet-stream", Size: MaxAttachmentSize}, i18n.English))

	assert.Equal(t, "File size must not exceed 10 MB",
		v.CheckAttachment(model.Attachment{Name: "big.pdf", ContentType: "application/pdf", Size: MaxAttachmentSize + 1}, i18n.English))
	assert.Equal(t, "Allowed file types: PDF, DOC, DOCX, JPG, PNG, XLS, XLSX",
		v.CheckAttachment(model.Attachment{Name: "notes.txt", ContentType: "text/plain", Size: 10}, i18n.English))
}

func TestDetectContentType(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n")
	assert.Equal(t, "application/pdf", DetectContentType("doc.pdf", pdf))

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	assert.Equal(t, "image/png", DetectContentType("scan.png", png))

	assert.False(t, AllowedAttachment(model.Attachment{Name: "x.txt", ContentType: DetectContentType("x.txt", []byte("hello world"))}))
}

func TestDetectContentType_Containers(t *testing.T) {
	zipHead := []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00")
	oleHead := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0, 0, 0, 0, 0, 0, 0, 0}

	tests := []struct {
		name    string
		head    []byte
		want    string
		allowed bool
	}{
		{"sheet.xlsx", zipHead, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"letter.DOCX", zipHead, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"old.xls", oleHead, "application/vnd.ms-excel", true},
		{"old.doc", oleHead, "application/msword", true},
		// Переименованный архив не выдается за PDF или картинку
		{"invoice.pdf", zipHead, "application/zip", false},
		{"photo.png", zipHead, "application/zip", false},
		// OLE-контейнер с расширением формата ZIP
		{"report.docx", oleHead, "application/x-ole-storage", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectContentType(tt.name, tt.head)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.allowed, AllowedAttachment(model.Attachment{Name: tt.name, ContentType: got}))
		})
	}
}

func TestValidate_BlankText(t *testing.T) {
	req := validRequest()
	req.Commodity = "   "
	req.Company = "\t\n"

	errs := newTestValidator().Validate(req, i18n.English)
	assert.Len(t, errs, 2)
	assert.Equal(t, "This field is required", errs["commodity"])
	assert.Equal(t, "This field is required", errs["company"])
}

func TestValidate_GrossWeightBound(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.GrossWeight = 1000000
	assert.Empty(t, v.Validate(req, i18n.English))

	req.GrossWeight = 1e12
	errs := v.Validate(req, i18n.English)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Gross weight must not exceed 1,000,000 kg", errs["grossWeight"])

	req.GrossWeight = 0
	assert.Equal(t, "This field is required", v.Validate(req, i18n.English)["grossWeight"])
}

func TestValidateStruct(t *testing.T) {
	type message struct {
		To string `validate:"required,email"`
	}
	assert.NoError(t, ValidateStruct(message{To: "ops@acmecorp.com"}))
	assert.Error(t, ValidateStruct(message{}))
}
