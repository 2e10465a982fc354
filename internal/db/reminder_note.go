package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const createReminderNote = `
INSERT INTO reminder_notes (customer_id, content, remind_at)
VALUES ($1, $2, $3)
RETURNING id, customer_id, content, remind_at, completed, created_at
`

func (store *SQLStore) CreateReminderNote(ctx context.Context, arg CreateReminderNoteParams) (ReminderNote, error) {
	row := store.connPool.QueryRow(ctx, createReminderNote, arg.CustomerID, arg.Content, arg.RemindAt)
	return scanReminderNote(row)
}

const listReminderNotesByCustomer = `
SELECT id, customer_id, content, remind_at, completed, created_at
FROM reminder_notes
WHERE customer_id = $1
ORDER BY created_at DESC
`

func (store *SQLStore) ListReminderNotesByCustomer(ctx context.Context, customerID uuid.UUID) ([]ReminderNote, error) {
	rows, err := store.connPool.Query(ctx, listReminderNotesByCustomer, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReminderNotes(rows)
}

const listPendingReminderNotes = `
SELECT id, customer_id, content, remind_at, completed, created_at
FROM reminder_notes
WHERE completed = false AND remind_at IS NOT NULL
ORDER BY remind_at ASC
`

// ListPendingReminderNotes returns every incomplete note that has a reminder
// time set. The reminder-due watcher compares the time against its own clock.
func (store *SQLStore) ListPendingReminderNotes(ctx context.Context) ([]ReminderNote, error) {
	rows, err := store.connPool.Query(ctx, listPendingReminderNotes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReminderNotes(rows)
}

const completeReminderNote = `
UPDATE reminder_notes
SET completed = true
WHERE id = $1 AND customer_id = $2
RETURNING id, customer_id, content, remind_at, completed, created_at
`

func (store *SQLStore) CompleteReminderNote(ctx context.Context, arg CompleteReminderNoteParams) (ReminderNote, error) {
	row := store.connPool.QueryRow(ctx, completeReminderNote, arg.ID, arg.CustomerID)
	return scanReminderNote(row)
}

func scanReminderNote(row pgx.Row) (ReminderNote, error) {
	var n ReminderNote
	err := row.Scan(
		&n.ID,
		&n.CustomerID,
		&n.Content,
		&n.RemindAt,
		&n.Completed,
		&n.CreatedAt,
	)
	return n, err
}

func collectReminderNotes(rows pgx.Rows) ([]ReminderNote, error) {
	notes := make([]ReminderNote, 0)
	for rows.Next() {
		n, err := scanReminderNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}
