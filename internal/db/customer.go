package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const createCustomer = `
INSERT INTO customers (full_name, phone, email, status, source, registration_date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, full_name, phone, email, status, source, registration_date, created_at
`

func (store *SQLStore) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error) {
	row := store.connPool.QueryRow(ctx, createCustomer,
		arg.FullName,
		arg.Phone,
		arg.Email,
		arg.Status,
		arg.Source,
		arg.RegistrationDate,
	)

	return scanCustomer(row)
}

const getCustomerByID = `
SELECT id, full_name, phone, email, status, source, registration_date, created_at
FROM customers
WHERE id = $1
`

func (store *SQLStore) GetCustomerByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	row := store.connPool.QueryRow(ctx, getCustomerByID, id)
	return scanCustomer(row)
}

const listCustomers = `
SELECT id, full_name, phone, email, status, source, registration_date, created_at
FROM customers
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

func (store *SQLStore) ListCustomers(ctx context.Context, arg ListCustomersParams) ([]Customer, error) {
	rows, err := store.connPool.Query(ctx, listCustomers, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCustomers(rows)
}

const listCustomersByStatuses = `
SELECT id, full_name, phone, email, status, source, registration_date, created_at
FROM customers
WHERE status = ANY($1::text[])
ORDER BY created_at ASC
`

// ListCustomersByStatuses returns every customer currently in one of the given
// lifecycle stages. Used by the escalation watcher; the overdue decision is
// made by the caller so that customers without a registration date are skipped
// rather than filtered by SQL.
func (store *SQLStore) ListCustomersByStatuses(ctx context.Context, statuses []CustomerStatus) ([]Customer, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	rows, err := store.connPool.Query(ctx, listCustomersByStatuses, values)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCustomers(rows)
}

const updateCustomerStatus = `
UPDATE customers
SET status = $2
WHERE id = $1
RETURNING id, full_name, phone, email, status, source, registration_date, created_at
`

func (store *SQLStore) UpdateCustomerStatus(ctx context.Context, arg UpdateCustomerStatusParams) (Customer, error) {
	row := store.connPool.QueryRow(ctx, updateCustomerStatus, arg.ID, arg.Status)
	return scanCustomer(row)
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.Phone,
		&c.Email,
		&c.Status,
		&c.Source,
		&c.RegistrationDate,
		&c.CreatedAt,
	)
	return c, err
}

func collectCustomers(rows pgx.Rows) ([]Customer, error) {
	customers := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
