package notifier

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

const defaultDeliveryTimeout = 10 * time.Second

// GocronNotifier implements ports.LocalNotifier. Each scheduled notification
// becomes a gocron job tagged with the notification ID.
type GocronNotifier struct {
	scheduler *gocron.Scheduler
	repo      ports.NotificationRepository
	delivery  ports.NotificationDelivery
	clock     ports.Clock
	logger    ports.Logger
	timeout   time.Duration

	mu      sync.Mutex
	pending map[string]ports.LocalNotification
}

type GocronNotifierParams struct {
	Repository      ports.NotificationRepository
	Delivery        ports.NotificationDelivery
	Clock           ports.Clock
	Logger          ports.Logger
	Location        *time.Location
	DeliveryTimeout time.Duration
}

func NewGocronNotifier(params GocronNotifierParams) (*GocronNotifier, error) {
	if params.Repository == nil {
		return nil, errors.NewValidationError("notification repository is required")
	}
	if params.Delivery == nil {
		return nil, errors.NewValidationError("notification delivery is required")
	}
	if params.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if params.Location == nil {
		params.Location = time.UTC
	}
	if params.DeliveryTimeout <= 0 {
		params.DeliveryTimeout = defaultDeliveryTimeout
	}

	scheduler := gocron.NewScheduler(params.Location)
	scheduler.StartAsync()

	return &GocronNotifier{
		scheduler: scheduler,
		repo:      params.Repository,
		delivery:  params.Delivery,
		clock:     params.Clock,
		logger:    params.Logger,
		timeout:   params.DeliveryTimeout,
		pending:   make(map[string]ports.LocalNotification),
	}, nil
}

// CancelAllLocalNotifications removes every scheduled job and marks stored ones cancelled
func (n *GocronNotifier) CancelAllLocalNotifications(ctx context.Context) error {
	n.mu.Lock()
	for id := range n.pending {
		if err := n.scheduler.RemoveByTag(id); err != nil {
			n.logger.Debug("Notification job already gone", ports.F("id", id), ports.F("error", err))
		}
	}
	n.pending = make(map[string]ports.LocalNotification)
	n.mu.Unlock()

	cancelled, err := n.repo.CancelPending(ctx)
	if err != nil {
		return err
	}

	n.logger.Info("Cancelled local notifications", ports.F("cancelled", cancelled))
	return nil
}

func (n *GocronNotifier) CreateChannel(ctx context.Context, channel ports.NotificationChannel) (bool, error) {
	created, err := n.repo.SaveChannel(ctx, channel)
	if err != nil {
		return false, err
	}
	if created {
		n.logger.Info("Notification channel created",
			ports.F("channel_id", channel.ID),
			ports.F("channel_name", channel.Name))
	}
	return created, nil
}

func (n *GocronNotifier) ScheduleLocalNotification(ctx context.Context, notification ports.LocalNotification) error {
	if !supportedRepeat(notification.RepeatType) {
		return errors.NewValidationError("unsupported repeat type: " + notification.RepeatType)
	}

	exists, err := n.repo.ChannelExists(ctx, notification.ChannelID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewNotFoundError("notification channel not registered: " + notification.ChannelID)
	}

	err = n.repo.SaveNotification(ctx, &ports.NotificationRecord{
		ID:         notification.ID,
		ChannelID:  notification.ChannelID,
		Title:      notification.Title,
		Message:    notification.Message,
		FireAt:     notification.FireAt,
		RepeatType: notification.RepeatType,
		Status:     ports.NotificationStatusPending,
	})
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	job := repeatEvery(n.scheduler, notification.RepeatType)
	if _, err := job.StartAt(notification.FireAt).Tag(notification.ID).Do(n.fire, notification.ID); err != nil {
		return errors.NewNotificationError("failed to schedule notification job", err)
	}
	n.pending[notification.ID] = notification

	n.logger.Info("Local notification scheduled",
		ports.F("id", notification.ID),
		ports.F("fire_at", notification.FireAt),
		ports.F("repeat", notification.RepeatType))
	return nil
}

// PendingNotifications returns scheduled notifications ordered by fire time
func (n *GocronNotifier) PendingNotifications(_ context.Context) ([]ports.LocalNotification, error) {
	n.mu.Lock()
	out := make([]ports.LocalNotification, 0, len(n.pending))
	for _, p := range n.pending {
		out = append(out, p)
	}
	n.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out, nil
}

// Close stops the scheduler and waits for running jobs
func (n *GocronNotifier) Close() {
	n.scheduler.Stop()
}

func (n *GocronNotifier) fire(id string) {
	n.mu.Lock()
	notification, ok := n.pending[id]
	if ok && notification.RepeatType == "" {
		delete(n.pending, id)
	}
	n.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.delivery.Deliver(ctx, notification.Title, notification.Message); err != nil {
		n.logger.Error("Failed to deliver local notification",
			ports.F("id", id),
			ports.F("error", err))
		return
	}

	if err := n.repo.RecordDelivery(ctx, id, n.clock.Now()); err != nil {
		n.logger.Warn("Failed to record notification delivery",
			ports.F("id", id),
			ports.F("error", err))
	}

	n.logger.Info("Local notification delivered", ports.F("id", id), ports.F("title", notification.Title))
}

func supportedRepeat(repeat string) bool {
	switch repeat {
	case "", "minute", "hour", "day", "week":
		return true
	}
	return false
}

// repeatEvery starts a job definition; an empty repeat fires once
func repeatEvery(s *gocron.Scheduler, repeat string) *gocron.Scheduler {
	job := s.Every(1)
	switch repeat {
	case "hour":
		return job.Hour()
	case "day":
		return job.Day()
	case "week":
		return job.Week()
	case "minute":
		return job.Minute()
	}
	return job.Minute().LimitRunsTo(1)
}
