package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is published after an order transaction commits.
// Delivery is fire-and-forget: a failed or dropped event never affects the
// already-persisted order.
type OrderCreatedEvent struct {
	EventID        string          `json:"event_id"`
	OrderID        uint64          `json:"order_id"`
	RecipientName  string          `json:"recipient_name"`
	RecipientEmail string          `json:"recipient_email"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	PaymentDueDate time.Time       `json:"payment_due_date"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
