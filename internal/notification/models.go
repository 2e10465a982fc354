package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeEscalation  Type = "escalation"
	TypeAppointment Type = "appointment"
	TypeNewLead     Type = "new_lead"
	TypeSystem      Type = "system"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notification is a single entry in the notification center. After creation
// only IsRead is ever mutated; content fields are immutable.
type Notification struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Type     Type     `json:"type"`
	Priority Priority `json:"priority"`
	// DedupKey identifies the (entity, condition) pair this notification was
	// raised for. At most one entry per active key is ever kept; an empty key
	// is never deduplicated.
	DedupKey  string    `json:"dedup_key,omitempty"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// PermissionStatus mirrors the browser Notification permission states reported
// by the console.
type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
	PermissionDefault PermissionStatus = "default"
)

// Settings control the best-effort side channels. They are persisted together
// with the notification list.
type Settings struct {
	SoundEnabled       bool             `json:"sound_enabled"`
	BrowserPushEnabled bool             `json:"browser_push_enabled"`
	PermissionStatus   PermissionStatus `json:"permission_status"`
}

func defaultSettings() Settings {
	return Settings{
		SoundEnabled:       true,
		BrowserPushEnabled: false,
		PermissionStatus:   PermissionDefault,
	}
}

// EscalationKey is the dedup key for "lead left unworked too long".
func EscalationKey(customerID uuid.UUID) string {
	return fmt.Sprintf("escalation_%s", customerID)
}

// ReminderKey is the dedup key for "reminder note came due".
func ReminderKey(noteID uuid.UUID) string {
	return fmt.Sprintf("reminder_%s", noteID)
}

// NewLeadKey is the dedup key for "new lead arrived".
func NewLeadKey(customerID uuid.UUID) string {
	return fmt.Sprintf("new_lead_%s", customerID)
}

// ReminderNotificationID embeds the dedup key plus a timestamp suffix so that
// IDs stay unique while remaining prefix-matchable against the key.
func ReminderNotificationID(noteID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s_%d", ReminderKey(noteID), at.Unix())
}
