package watcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeCustomerSource struct {
	customers    []db.Customer
	notes        []db.ReminderNote
	customersErr error
	notesErr     error
	gotStatuses  []db.CustomerStatus
}

func (f *fakeCustomerSource) ListCustomersByStatuses(ctx context.Context, statuses []db.CustomerStatus) ([]db.Customer, error) {
	f.gotStatuses = statuses
	return f.customers, f.customersErr
}

func (f *fakeCustomerSource) ListPendingReminderNotes(ctx context.Context) ([]db.ReminderNote, error) {
	return f.notes, f.notesErr
}

var scanTime = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestWatcher(t *testing.T, source *fakeCustomerSource, center *notification.Center) *Watcher {
	t.Helper()

	w, err := NewWatcher(Config{
		Source:              source,
		Center:              center,
		EscalationThreshold: 2 * time.Hour,
		EscalationInterval:  5 * time.Minute,
		ReminderInterval:    30 * time.Second,
		Now:                 func() time.Time { return scanTime },
	})
	require.NoError(t, err)

	return w
}

func unworkedCustomer(name string, registeredAgo time.Duration) db.Customer {
	registered := scanTime.Add(-registeredAgo)
	return db.Customer{
		ID:               uuid.New(),
		FullName:         name,
		Status:           db.CustomerStatusNew,
		RegistrationDate: &registered,
	}
}

func TestEscalationScanIsIdempotent(t *testing.T) {
	customer := unworkedCustomer("Jane Doe", 3*time.Hour)
	source := &fakeCustomerSource{customers: []db.Customer{customer}}
	center := notification.NewCenter(notification.CenterConfig{})
	w := newTestWatcher(t, source, center)

	w.scanOverdueLeads(context.Background())
	w.scanOverdueLeads(context.Background())

	list := center.List()
	require.Len(t, list, 1)
	require.Equal(t, notification.TypeEscalation, list[0].Type)
	require.Equal(t, notification.PriorityHigh, list[0].Priority)
	require.Equal(t, notification.EscalationKey(customer.ID), list[0].DedupKey)
	require.Contains(t, list[0].Message, "Jane Doe")
	// Elapsed time is rendered against the scan clock, not the wall clock.
	require.Contains(t, list[0].Message, "3 hours ago")
}

func TestEscalationThresholdBoundary(t *testing.T) {
	testCases := []struct {
		name          string
		registeredAgo time.Duration
		wantEscalated bool
	}{
		{
			name:          "ExactlyAtThreshold",
			registeredAgo: 2 * time.Hour,
			wantEscalated: false,
		},
		{
			name:          "OneMinutePastThreshold",
			registeredAgo: 2*time.Hour + time.Minute,
			wantEscalated: true,
		},
		{
			name:          "WellUnderThreshold",
			registeredAgo: 30 * time.Minute,
			wantEscalated: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := &fakeCustomerSource{customers: []db.Customer{unworkedCustomer("Jane Doe", tc.registeredAgo)}}
			center := notification.NewCenter(notification.CenterConfig{})
			w := newTestWatcher(t, source, center)

			w.scanOverdueLeads(context.Background())

			if tc.wantEscalated {
				require.Len(t, center.List(), 1)
			} else {
				require.Empty(t, center.List())
			}
		})
	}
}

func TestEscalationSkipsMissingRegistrationDate(t *testing.T) {
	source := &fakeCustomerSource{customers: []db.Customer{
		{ID: uuid.New(), FullName: "No Date", Status: db.CustomerStatusNew},
	}}
	center := notification.NewCenter(notification.CenterConfig{})
	w := newTestWatcher(t, source, center)

	w.scanOverdueLeads(context.Background())

	require.Empty(t, center.List())
}

func TestEscalationScansUnworkedStatusesOnly(t *testing.T) {
	source := &fakeCustomerSource{}
	center := notification.NewCenter(notification.CenterConfig{})
	w := newTestWatcher(t, source, center)

	w.scanOverdueLeads(context.Background())

	require.Equal(t, db.UnworkedStatuses, source.gotStatuses)
}

func TestEscalationGuardSurvivesClearAll(t *testing.T) {
	customer := unworkedCustomer("Jane Doe", 3*time.Hour)
	source := &fakeCustomerSource{customers: []db.Customer{customer}}
	center := notification.NewCenter(notification.CenterConfig{})
	w := newTestWatcher(t, source, center)
	ctx := context.Background()

	w.scanOverdueLeads(ctx)
	center.ClearAll(ctx)
	w.scanOverdueLeads(ctx)

	require.Empty(t, center.List())
}

func TestEscalationRefiresAfterClearWhenConfigured(t *testing.T) {
	customer := unworkedCustomer("Jane Doe", 3*time.Hour)
	source := &fakeCustomerSource{customers: []db.Customer{customer}}
	center := notification.NewCenter(notification.CenterConfig{DedupResetOnClear: true})
	w := newTestWatcher(t, source, center)
	ctx := context.Background()

	w.scanOverdueLeads(ctx)
	center.ClearAll(ctx)
	w.scanOverdueLeads(ctx)

	require.Len(t, center.List(), 1)
}

func TestEscalationScanAbandonsTickOnSourceError(t *testing.T) {
	source := &fakeCustomerSource{customersErr: errors.New("db down")}
	center := notification.NewCenter(notification.CenterConfig{})
	w := newTestWatcher(t, source, center)

	w.scanOverdueLeads(context.Background())

	require.Empty(t, center.List())
}

func TestEscalationEmitsInIterationOrder(t *testing.T) {
	first := unworkedCustomer("First", 4*time.Hour)
	second := unworkedCustomer("Second", 3*time.Hour)
	source := &fakeCustomerSource{customers: []db.Customer{first, second}}
	center := notification.NewCenter(notification.CenterConfig{})
	w := newTestWatcher(t, source, center)

	w.scanOverdueLeads(context.Background())

	list := center.List()
	require.Len(t, list, 2)
	// Newest first: the customer scanned last sits at the head.
	require.Contains(t, list[0].Message, "Second")
	require.Contains(t, list[1].Message, "First")
}
