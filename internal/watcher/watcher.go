package watcher

import (
	"context"
	"time"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// CustomerSource is the read-only view of customer data the watchers scan.
// Watchers never mutate customer or reminder records.
type CustomerSource interface {
	ListCustomersByStatuses(ctx context.Context, statuses []db.CustomerStatus) ([]db.Customer, error)
	ListPendingReminderNotes(ctx context.Context) ([]db.ReminderNote, error)
}

// Watcher owns the periodic scans that feed the notification center: the
// escalation scan over unworked leads and the due scan over reminder notes.
type Watcher struct {
	source    CustomerSource
	center    *notification.Center
	scheduler gocron.Scheduler

	escalationThreshold time.Duration
	escalationInterval  time.Duration
	reminderInterval    time.Duration
	now                 func() time.Time
}

type Config struct {
	Source              CustomerSource
	Center              *notification.Center
	EscalationThreshold time.Duration
	EscalationInterval  time.Duration
	ReminderInterval    time.Duration
	Now                 func() time.Time
}

func NewWatcher(cfg Config) (*Watcher, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Watcher{
		source:              cfg.Source,
		center:              cfg.Center,
		scheduler:           scheduler,
		escalationThreshold: cfg.EscalationThreshold,
		escalationInterval:  cfg.EscalationInterval,
		reminderInterval:    cfg.ReminderInterval,
		now:                 now,
	}, nil
}

// Start schedules both scans and starts the scheduler.
func (w *Watcher) Start() error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.escalationInterval),
		gocron.NewTask(
			func() {
				w.scanOverdueLeads(context.Background())
			},
		),
	)

	if err != nil {
		return err
	}

	_, err = w.scheduler.NewJob(
		gocron.DurationJob(w.reminderInterval),
		gocron.NewTask(
			func() {
				w.scanDueReminders(context.Background())
			},
		),
	)

	if err != nil {
		return err
	}

	w.scheduler.Start()
	log.Info().
		Dur("escalation_interval", w.escalationInterval).
		Dur("reminder_interval", w.reminderInterval).
		Msg("watchers started")
	return nil
}

// Stop cancels both scans. Must be called on server teardown so no tick
// writes into a disposed center.
func (w *Watcher) Stop() error {
	return w.scheduler.Shutdown()
}
