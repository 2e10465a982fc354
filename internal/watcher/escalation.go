package watcher

import (
	"context"
	"fmt"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

// scanOverdueLeads raises at most one escalation per lead that has stayed in
// an unworked status past the threshold. The dedup guard lives in the center,
// so re-running the scan never duplicates an active escalation.
func (w *Watcher) scanOverdueLeads(ctx context.Context) {
	customers, err := w.source.ListCustomersByStatuses(ctx, db.UnworkedStatuses)
	if err != nil {
		log.Error().Err(err).Msg("escalation scan: failed to list unworked customers")
		return
	}

	now := w.now()
	for _, customer := range customers {
		// A lead without a registration date is never overdue.
		if customer.RegistrationDate == nil {
			continue
		}

		elapsed := now.Sub(*customer.RegistrationDate)
		if elapsed <= w.escalationThreshold {
			continue
		}

		key := notification.EscalationKey(customer.ID)
		if w.center.Has(key) {
			continue
		}

		_, added := w.center.Add(ctx, notification.Notification{
			Title:    "Lead needs attention",
			Message:  fmt.Sprintf("%s registered %s and has not been worked yet", customer.FullName, humanize.RelTime(*customer.RegistrationDate, now, "ago", "from now")),
			Type:     notification.TypeEscalation,
			Priority: notification.PriorityHigh,
			DedupKey: key,
			Link:     fmt.Sprintf("/customers/%s", customer.ID),
		})

		if added {
			log.Info().
				Str("customer_id", customer.ID.String()).
				Dur("elapsed", elapsed).
				Msg("escalation raised for unworked lead")
		}
	}
}
