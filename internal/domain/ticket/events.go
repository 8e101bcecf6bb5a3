package ticket

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

// OrderCreated is published after an order is persisted and its ticket
// record cached. Consumed by the confirmation email handler.
type OrderCreated struct {
	Header EventHeader `json:"header"`

	Reference   string `json:"reference"`
	EventName   string `json:"event_name"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	QRCodeURL   string `json:"qr_code_url"`
	UnlockToken string `json:"pdf_unlock_token"`
}

// BulkReceiptRequested asks the background worker to render a batch of
// receipts and park them in file storage. Fire and forget.
type BulkReceiptRequested struct {
	Header EventHeader `json:"header"`

	JobID      string   `json:"job_id"`
	References []string `json:"references"`
	Variant    string   `json:"variant"`
}
