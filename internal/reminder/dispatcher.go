// Package reminder delivers stored reminders when their time comes.
package reminder

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/myplan/myplan-bot/internal/model"
)

type Store interface {
	DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// Sender delivers one reminder message to a telegram user.
type Sender interface {
	SendReminder(telegramID int64, text string) error
}

// Dispatcher polls for due reminders on a fixed interval and sends each one
// once. A reminder is only marked sent after delivery succeeded, so a failed
// send is retried on the next tick.
type Dispatcher struct {
	store    Store
	sender   Sender
	interval time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

func NewDispatcher(store Store, sender Sender, interval time.Duration, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		sender:   sender,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchDue(ctx)
		}
	}
}

// DispatchDue sends every reminder that is due right now.
func (d *Dispatcher) DispatchDue(ctx context.Context) {
	due, err := d.store.DueReminders(ctx, d.now())
	if err != nil {
		d.log.WithError(err).Error("error fetching due reminders")
		return
	}

	for _, r := range due {
		if err := d.sender.SendReminder(r.TelegramID, "Напоминание: "+r.Text); err != nil {
			d.log.WithField("reminderId", r.ID).WithError(err).Error("error sending reminder")
			continue
		}
		if err := d.store.MarkReminderSent(ctx, r.ID); err != nil {
			d.log.WithField("reminderId", r.ID).WithError(err).Error("error marking reminder sent")
		}
	}
}
