package ports

import (
	"context"
	"time"
)

// NotificationChannel identifies a local notification channel
type NotificationChannel struct {
	ID   string
	Name string
}

// LocalNotification is a device-scheduled notification
type LocalNotification struct {
	ID              string
	ChannelID       string
	Title           string
	Message         string
	FireAt          time.Time
	LargeIcon       string
	LargeIconURL    string
	SmallIcon       string
	BigLargeIcon    string
	BigLargeIconURL string
	RepeatType      string
}

// LocalNotifier is the platform local-notification service
type LocalNotifier interface {
	CancelAllLocalNotifications(ctx context.Context) error
	CreateChannel(ctx context.Context, channel NotificationChannel) (bool, error)
	ScheduleLocalNotification(ctx context.Context, n LocalNotification) error
	PendingNotifications(ctx context.Context) ([]LocalNotification, error)
}

// NotificationRecord is the persisted form of a scheduled notification
type NotificationRecord struct {
	ID          string
	ChannelID   string
	Title       string
	Message     string
	FireAt      time.Time
	RepeatType  string
	Status      string
	DeliveredAt *time.Time
	Deliveries  int
	CreatedAt   time.Time
}

// Notification record statuses
const (
	NotificationStatusPending   = "pending"
	NotificationStatusCancelled = "cancelled"
)

// NotificationRepository persists channels and scheduled notifications
type NotificationRepository interface {
	SaveChannel(ctx context.Context, channel NotificationChannel) (bool, error)
	ChannelExists(ctx context.Context, id string) (bool, error)
	SaveNotification(ctx context.Context, record *NotificationRecord) error
	CancelPending(ctx context.Context) (int64, error)
	RecordDelivery(ctx context.Context, id string, at time.Time) error
	ListNotifications(ctx context.Context, status string) ([]*NotificationRecord, error)
}

// NotificationDelivery pushes a fired notification to the user
type NotificationDelivery interface {
	Deliver(ctx context.Context, title, message string) error
}
