package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides all functions to execute db queries and transactions.
type Store interface {
	CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (Customer, error)
	ListCustomers(ctx context.Context, arg ListCustomersParams) ([]Customer, error)
	ListCustomersByStatuses(ctx context.Context, statuses []CustomerStatus) ([]Customer, error)
	UpdateCustomerStatus(ctx context.Context, arg UpdateCustomerStatusParams) (Customer, error)

	CreateReminderNote(ctx context.Context, arg CreateReminderNoteParams) (ReminderNote, error)
	ListReminderNotesByCustomer(ctx context.Context, customerID uuid.UUID) ([]ReminderNote, error)
	ListPendingReminderNotes(ctx context.Context) ([]ReminderNote, error)
	CompleteReminderNote(ctx context.Context, arg CompleteReminderNoteParams) (ReminderNote, error)

	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)

	Ping(ctx context.Context) error
}

type SQLStore struct {
	connPool *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) Store {
	return &SQLStore{
		connPool: db,
	}
}

// Ping checks if the database connection is alive.
func (store *SQLStore) Ping(ctx context.Context) error {
	return store.connPool.Ping(ctx)
}

type CreateCustomerParams struct {
	FullName         string
	Phone            string
	Email            string
	Status           CustomerStatus
	Source           string
	RegistrationDate *time.Time
}

type ListCustomersParams struct {
	Status *CustomerStatus
	Limit  int32
	Offset int32
}

type UpdateCustomerStatusParams struct {
	ID     uuid.UUID
	Status CustomerStatus
}

type CreateReminderNoteParams struct {
	CustomerID uuid.UUID
	Content    string
	RemindAt   *time.Time
}

type CompleteReminderNoteParams struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
}

type CreateUserParams struct {
	FullName       string
	Email          string
	HashedPassword string
	Role           UserRole
}
