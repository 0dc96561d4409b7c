package notification

import (
	"context"
	"fmt"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
	"shopmarket/pkg/metrics"
)

// EmailRepository contract interface
type EmailRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, body string) error
}

const defaultBufferSize = 64

// Dispatcher consumes order-created events and sends confirmation emails.
// It decouples notification delivery from the order transaction: Publish
// never blocks, and a failed send is logged and swallowed.
type Dispatcher struct {
	emailRepo EmailRepository
	events    chan domain.OrderCreatedEvent
}

func NewDispatcher(emailRepo EmailRepository) *Dispatcher {
	return &Dispatcher{
		emailRepo: emailRepo,
		events:    make(chan domain.OrderCreatedEvent, defaultBufferSize),
	}
}

// PublishOrderCreated enqueues an event for delivery. When the buffer is
// full the event is dropped and counted; the order itself already
// committed and must not wait on the mailer.
func (d *Dispatcher) PublishOrderCreated(event domain.OrderCreatedEvent) {
	select {
	case d.events <- event:
	default:
		metrics.EventsDropped.Inc()
		logger.Warn("Order event buffer full, dropping event", "event_id", event.EventID, "order_id", event.OrderID)
	}
}

// Run consumes events until the context is cancelled. Intended to run in
// its own goroutine next to the HTTP server.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event domain.OrderCreatedEvent) {
	if event.RecipientEmail == "" {
		logger.Warn("Order confirmation skipped, customer has no email", "order_id", event.OrderID)
		return
	}

	subject := fmt.Sprintf("Order confirmation #%d", event.OrderID)
	body := fmt.Sprintf(
		"Hi %s,\nThank you for your order #%d.\nTotal: %s\nPayment due date: %s\n",
		coalesce(event.RecipientName, "Customer"),
		event.OrderID,
		event.TotalPrice.StringFixed(2),
		event.PaymentDueDate.Format("2006-01-02"),
	)

	if err := d.emailRepo.SendEmail(ctx, event.RecipientName, event.RecipientEmail, subject, body); err != nil {
		logger.Error("Failed to send order confirmation", "order_id", event.OrderID, "error", err)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
