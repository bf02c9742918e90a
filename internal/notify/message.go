package notify

// Message - готовое к отправке письмо.
type Message struct {
	SubmissionID string   `json:"submissionId" validate:"required"`
	Kind         string   `json:"kind" validate:"required,oneof=customer operations"`
	From         string   `json:"from" validate:"required"`
	To           []string `json:"to" validate:"required,min=1,dive,email"`
	ReplyTo      string   `json:"replyTo,omitempty" validate:"omitempty,email"`
	Subject      string   `json:"subject" validate:"required"`
	HTML         string   `json:"html" validate:"required"`
}

const (
	KindCustomer   = "customer"
	KindOperations = "operations"
)
