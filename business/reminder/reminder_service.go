package reminder

import (
	"context"
	"fmt"
	"time"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
	"shopmarket/pkg/metrics"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	FindDueForReminder(ctx context.Context, dueDate time.Time) ([]domain.Order, error)
	MarkReminderSent(ctx context.Context, orderID uint64) error
}

type EmailRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, body string) error
}

type reminderService struct {
	orderRepo OrdersRepository
	emailRepo EmailRepository
}

func NewReminderService(orderRepo OrdersRepository, emailRepo EmailRepository) *reminderService {
	return &reminderService{
		orderRepo: orderRepo,
		emailRepo: emailRepo,
	}
}

// SendDueReminders emails customers whose unpaid orders are due tomorrow
// and marks each order reminded after a successful send. Returns the
// number of reminders that went out.
//
// There is no cross-worker claim: two concurrent runs can double-send.
// Acceptable for a single scheduler instance; anything stricter needs an
// out-of-band lock.
func (s *reminderService) SendDueReminders(ctx context.Context, today time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	tomorrow := dateOnly(today).AddDate(0, 0, 1)

	orders, err := s.orderRepo.FindDueForReminder(ctx, tomorrow)
	if err != nil {
		logger.Error("Failed to load orders due for reminder", err)
		return 0, err
	}

	sent := 0
	for _, order := range orders {
		if order.Customer == nil || order.Customer.Email == "" {
			logger.Warn("Reminder skipped, customer has no email", "order_id", order.ID)
			continue
		}

		subject := fmt.Sprintf("Payment reminder for order #%d", order.ID)
		body := fmt.Sprintf(
			"Hi %s,\nThis is a reminder to pay for order #%d.\nTotal: %s\nPayment due date: %s\n\nIf you have already paid, you can ignore this message.\n",
			greeting(order),
			order.ID,
			order.TotalPrice.StringFixed(2),
			order.PaymentDueDate.Format("2006-01-02"),
		)

		if err := s.emailRepo.SendEmail(ctx, order.Customer.FullName, order.Customer.Email, subject, body); err != nil {
			logger.Error("Failed to send payment reminder", "order_id", order.ID, "error", err)
			continue
		}

		if err := s.orderRepo.MarkReminderSent(ctx, order.ID); err != nil {
			logger.Error("Failed to mark reminder sent", "order_id", order.ID, "error", err)
			continue
		}

		sent++
		metrics.RemindersSent.Inc()
		logger.Info("Payment reminder sent", "order_id", order.ID, "email", order.Customer.Email)
	}

	return sent, nil
}

func greeting(order domain.Order) string {
	if order.FullName != "" {
		return order.FullName
	}
	if order.Customer != nil && order.Customer.FullName != "" {
		return order.Customer.FullName
	}

	return "Customer"
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
