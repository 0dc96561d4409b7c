package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"shopmarket/pkg/logger"
)

// ReminderSender is the daily job contract: given today's date it sends
// all reminders currently due and reports how many went out.
type ReminderSender interface {
	SendDueReminders(ctx context.Context, today time.Time) (int, error)
}

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddReminderJob registers the payment-reminder job on the given cron spec
// (e.g. "0 9 * * *" for a daily 09:00 run).
func (s *Scheduler) AddReminderJob(spec string, sender ReminderSender) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := sender.SendDueReminders(ctx, time.Now())
		if err != nil {
			logger.Error("Payment reminder job failed", err)
			return
		}

		logger.Info("Payment reminder job finished", "sent", sent)
	})

	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
