package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchased ticket order. The transient rendering payload lives
// in the cache; this is the durable side.
type Order struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference"`
	UserName      string          `json:"user_name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	EventName     string          `json:"event_name"`
	TicketID      string          `json:"ticket_id"`
	TicketType    string          `json:"ticket_type"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}
