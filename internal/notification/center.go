package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/clinidesk/clinidesk-BE/internal/event"
	"github.com/clinidesk/clinidesk-BE/internal/worker"
	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog/log"
)

// Center is the single owner of the notification list. Watchers, HTTP
// handlers, and the worker all hold a reference to the Center and never to
// the raw list, so every mutation funnels through one mutex.
type Center struct {
	mu            sync.Mutex
	notifications []*Notification
	settings      Settings
	dedup         map[string]struct{}

	snapshots         SnapshotStore
	distributor       worker.TaskDistributor
	events            event.EventSender
	dedupResetOnClear bool
	now               func() time.Time
}

type CenterConfig struct {
	Snapshots   SnapshotStore
	Distributor worker.TaskDistributor
	Events      event.EventSender
	// DedupResetOnClear re-arms the dedup guard when the inbox is cleared.
	// Off by default: clearing notifications must not trigger a re-notification
	// storm on the next watcher tick.
	DedupResetOnClear bool
	Now               func() time.Time
}

func NewCenter(cfg CenterConfig) *Center {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Center{
		notifications:     make([]*Notification, 0),
		settings:          defaultSettings(),
		dedup:             make(map[string]struct{}),
		snapshots:         cfg.Snapshots,
		distributor:       cfg.Distributor,
		events:            cfg.Events,
		dedupResetOnClear: cfg.DedupResetOnClear,
		now:               now,
	}
}

// Load restores the center state from the persisted snapshot. A missing
// snapshot leaves the center empty with default settings.
func (c *Center) Load(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}

	data, err := c.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.notifications = snap.Notifications
	if c.notifications == nil {
		c.notifications = make([]*Notification, 0)
	}
	c.settings = snap.Settings
	c.dedup = make(map[string]struct{}, len(snap.DedupKeys))
	for _, key := range snap.DedupKeys {
		c.dedup[key] = struct{}{}
	}

	log.Info().Int("count", len(c.notifications)).Msg("notification snapshot restored")
	return nil
}

// Add records a notification and dispatches its side channels. The ID is
// assigned when absent, IsRead always starts false, and CreatedAt is stamped
// when zero. A notification whose DedupKey is already active is suppressed.
// The second return value reports whether the notification was recorded.
func (c *Center) Add(ctx context.Context, n Notification) (Notification, bool) {
	c.mu.Lock()

	if n.DedupKey != "" {
		if _, exists := c.dedup[n.DedupKey]; exists {
			c.mu.Unlock()
			return n, false
		}
	}

	if n.ID == "" {
		n.ID = shortuuid.New()
	}
	n.IsRead = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.now()
	}

	// Newest first.
	stored := n
	c.notifications = append([]*Notification{&stored}, c.notifications...)
	if n.DedupKey != "" {
		c.dedup[n.DedupKey] = struct{}{}
	}

	settings := c.settings
	data := c.encodeSnapshotLocked()
	c.mu.Unlock()

	c.persist(ctx, data)
	c.dispatch(ctx, n, settings)

	return n, true
}

// MarkAsRead flips IsRead on the matching entry. It reports whether an entry
// was found; marking an unknown ID is a no-op.
func (c *Center) MarkAsRead(ctx context.Context, id string) bool {
	c.mu.Lock()

	found := false
	for _, n := range c.notifications {
		if n.ID == id {
			n.IsRead = true
			found = true
			break
		}
	}

	var data []byte
	if found {
		data = c.encodeSnapshotLocked()
	}
	c.mu.Unlock()

	if found {
		c.persist(ctx, data)
	}
	return found
}

// MarkAllAsRead flips IsRead on every entry.
func (c *Center) MarkAllAsRead(ctx context.Context) {
	c.mu.Lock()
	for _, n := range c.notifications {
		n.IsRead = true
	}
	data := c.encodeSnapshotLocked()
	c.mu.Unlock()

	c.persist(ctx, data)
}

// ClearAll empties the list. The dedup guard survives unless the center was
// configured with DedupResetOnClear.
func (c *Center) ClearAll(ctx context.Context) {
	c.mu.Lock()
	c.notifications = make([]*Notification, 0)
	if c.dedupResetOnClear {
		c.dedup = make(map[string]struct{})
	}
	data := c.encodeSnapshotLocked()
	c.mu.Unlock()

	c.persist(ctx, data)

	if c.events != nil {
		c.events.Broadcast(event.Event{
			Topic: event.TopicNotifications,
			Type:  event.EventTypeNotificationsCleared,
			Data:  struct{}{},
		})
	}
}

// UnreadCount returns the number of unread entries.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// List returns a copy of the notification list, newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]Notification, len(c.notifications))
	for i, n := range c.notifications {
		list[i] = *n
	}
	return list
}

// Has reports whether a notification with the given dedup key is active.
func (c *Center) Has(dedupKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.dedup[dedupKey]
	return ok
}

// Settings returns the current side-channel settings.
func (c *Center) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.settings
}

// UpdateSettings replaces the side-channel settings and persists them.
func (c *Center) UpdateSettings(ctx context.Context, settings Settings) {
	if settings.PermissionStatus == "" {
		settings.PermissionStatus = PermissionDefault
	}

	c.mu.Lock()
	c.settings = settings
	data := c.encodeSnapshotLocked()
	c.mu.Unlock()

	c.persist(ctx, data)
}

// encodeSnapshotLocked serializes the current state. Callers must hold the mutex.
func (c *Center) encodeSnapshotLocked() []byte {
	keys := make([]string, 0, len(c.dedup))
	for key := range c.dedup {
		keys = append(keys, key)
	}

	data, err := json.Marshal(snapshot{
		SchemaVersion: snapshotSchemaVersion,
		Notifications: c.notifications,
		Settings:      c.settings,
		DedupKeys:     keys,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode notification snapshot")
		return nil
	}
	return data
}

// persist writes the snapshot. Persistence failures are logged and dropped:
// the in-memory list stays authoritative for the running process.
func (c *Center) persist(ctx context.Context, data []byte) {
	if c.snapshots == nil || data == nil {
		return
	}

	if err := c.snapshots.Save(ctx, data); err != nil {
		log.Error().Err(err).Msg("failed to persist notification snapshot")
	}
}

// dispatch fans the notification out to the side channels. All channels are
// best effort; the list has already been updated when dispatch runs.
func (c *Center) dispatch(ctx context.Context, n Notification, settings Settings) {
	if c.events != nil {
		c.events.Broadcast(event.Event{
			Topic: event.TopicNotifications,
			Type:  event.EventTypeNotificationCreated,
			Data: struct {
				Notification Notification `json:"notification"`
				Sound        bool         `json:"sound"`
			}{Notification: n, Sound: settings.SoundEnabled},
		})
	}

	if c.distributor == nil {
		return
	}

	if settings.BrowserPushEnabled && settings.PermissionStatus == PermissionGranted {
		err := c.distributor.DistributeTaskDeliverPush(ctx, &worker.PayloadDeliverPush{
			NotificationID: n.ID,
			Title:          n.Title,
			Message:        n.Message,
			Type:           string(n.Type),
			Priority:       string(n.Priority),
			Link:           n.Link,
		})
		if err != nil {
			log.Error().Err(err).Str("notification_id", n.ID).Msg("failed to enqueue push delivery")
		}
	}

	if n.Type == TypeEscalation && n.Priority == PriorityHigh {
		err := c.distributor.DistributeTaskEscalationEmail(ctx, &worker.PayloadEscalationEmail{
			NotificationID: n.ID,
			Title:          n.Title,
			Message:        n.Message,
			Link:           n.Link,
		})
		if err != nil {
			log.Error().Err(err).Str("notification_id", n.ID).Msg("failed to enqueue escalation email")
		}
	}
}
