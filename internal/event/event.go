package event

// Event represents a server-sent event pushed to connected consoles.
type Event struct {
	Topic string      // e.g. "notifications"
	Type  string      // e.g. notification_created, notifications_cleared
	Data  interface{} // event payload, serialized as JSON
}

const (
	// TopicNotifications carries live notification center updates.
	TopicNotifications = "notifications"

	EventTypeNotificationCreated  = "notification_created"
	EventTypeNotificationsCleared = "notifications_cleared"
)

// EventSender is the interface for the server pushing events to clients.
type EventSender interface {
	Register(topic string, client chan Event)
	Unregister(topic string, client chan Event)
	Broadcast(event Event)
	Run()
}
