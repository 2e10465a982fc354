package db

import (
	"time"

	"github.com/google/uuid"
)

type CustomerStatus string

const (
	CustomerStatusNew        CustomerStatus = "new"
	CustomerStatusActive     CustomerStatus = "active"
	CustomerStatusInProgress CustomerStatus = "in_progress"
	CustomerStatusConverted  CustomerStatus = "converted"
	CustomerStatusClosed     CustomerStatus = "closed"
)

// UnworkedStatuses are the lifecycle stages in which a lead still waits
// for first contact by the clinic staff.
var UnworkedStatuses = []CustomerStatus{CustomerStatusNew, CustomerStatusActive}

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusNew, CustomerStatusActive, CustomerStatusInProgress,
		CustomerStatusConverted, CustomerStatusClosed:
		return true
	}
	return false
}

type Customer struct {
	ID       uuid.UUID      `json:"id"`
	FullName string         `json:"full_name"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email"`
	Status   CustomerStatus `json:"status"`
	// Source is the marketing channel the lead came from (ads, referral, walk-in, ...).
	Source           string     `json:"source"`
	RegistrationDate *time.Time `json:"registration_date"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ReminderNote struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	Content    string     `json:"content"`
	RemindAt   *time.Time `json:"remind_at"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"created_at"`
}

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Role           UserRole  `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
