package watcher

import (
	"context"
	"fmt"

	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/rs/zerolog/log"
)

// scanDueReminders raises at most one appointment notification per reminder
// note whose time has passed without being completed. Completed notes never
// fire. Reminders due in the same tick are emitted independently, in the
// iteration order of the pending list.
func (w *Watcher) scanDueReminders(ctx context.Context) {
	notes, err := w.source.ListPendingReminderNotes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder scan: failed to list pending reminder notes")
		return
	}

	now := w.now()
	for _, note := range notes {
		// A note without a reminder time is never due.
		if note.RemindAt == nil || note.Completed {
			continue
		}
		if note.RemindAt.After(now) {
			continue
		}

		key := notification.ReminderKey(note.ID)
		if w.center.Has(key) {
			continue
		}

		_, added := w.center.Add(ctx, notification.Notification{
			ID:       notification.ReminderNotificationID(note.ID, now),
			Title:    "Reminder due",
			Message:  note.Content,
			Type:     notification.TypeAppointment,
			Priority: notification.PriorityMedium,
			DedupKey: key,
			Link:     fmt.Sprintf("/customers/%s", note.CustomerID),
		})

		if added {
			log.Info().
				Str("note_id", note.ID.String()).
				Str("customer_id", note.CustomerID.String()).
				Msg("reminder-due notification raised")
		}
	}
}
