package domain

import "time"

// NotificationChannel identifies a delivery channel.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NotificationStatus records the dispatch outcome.
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationSkipped NotificationStatus = "skipped"
)

// Notification is an in-app notification row created after dispatch.
type Notification struct {
	ID        string
	RequestID string
	Channel   NotificationChannel
	Kind      string
	Body      string
	Status    NotificationStatus
	CreatedAt time.Time
}
