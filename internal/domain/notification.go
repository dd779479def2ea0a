package domain

// NotificationTypeDefault is assumed when a queue message carries no type tag.
const NotificationTypeDefault = "email"

// Notification is the known part of a queue message envelope. Messages are
// arbitrary JSON objects; everything beyond these fields is carried opaquely.
type Notification struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}
