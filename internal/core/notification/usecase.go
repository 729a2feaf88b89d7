package notification

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"weatherhome.app/internal/core/weather"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// Metric outcomes
const (
	OutcomeScheduled = "scheduled"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// SnapshotSource exposes the current-location weather sequence
type SnapshotSource interface {
	Current() []weather.CurrentSnapshot
	CurrentReady() <-chan struct{}
}

type UseCase struct {
	notifier    ports.LocalNotifier
	clock       ports.Clock
	logger      ports.Logger
	metrics     ports.MetricsCollector
	channel     ports.NotificationChannel
	delay       time.Duration
	defaultMode Mode

	mu sync.Mutex
}

type UseCaseDependencies struct {
	Notifier ports.LocalNotifier
	Clock    ports.Clock
	Logger   ports.Logger
	Metrics  ports.MetricsCollector

	// Optional, defaults apply when zero
	ChannelID   string
	ChannelName string
	Delay       time.Duration
	Mode        Mode
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("local notifier is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	uc := &UseCase{
		notifier:    deps.Notifier,
		clock:       deps.Clock,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
		channel:     ports.NotificationChannel{ID: deps.ChannelID, Name: deps.ChannelName},
		delay:       deps.Delay,
		defaultMode: deps.Mode,
	}
	if uc.channel.ID == "" {
		uc.channel.ID = DefaultChannelID
	}
	if uc.channel.Name == "" {
		uc.channel.Name = DefaultChannelName
	}
	if uc.delay <= 0 {
		uc.delay = ActivationDelay
	}
	if uc.defaultMode == "" {
		uc.defaultMode = ModeAwaitData
	}

	return uc, nil
}

// DefaultMode returns the configured activation mode
func (uc *UseCase) DefaultMode() Mode {
	return uc.defaultMode
}

// ScheduleFromSnapshot replaces any pending notification with one announcing the
// first snapshot. An empty sequence touches nothing and returns ErrNoWeatherData.
func (uc *UseCase) ScheduleFromSnapshot(ctx context.Context, snapshots []weather.CurrentSnapshot) (*Request, error) {
	if len(snapshots) == 0 {
		uc.logger.Debug("No current weather data, notification not scheduled")
		uc.metrics.RecordNotification(ctx, OutcomeSkipped)
		return nil, ErrNoWeatherData
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.notifier.CancelAllLocalNotifications(ctx); err != nil {
		return nil, uc.fail(ctx, "cancel pending notifications", err)
	}

	if _, err := uc.notifier.CreateChannel(ctx, uc.channel); err != nil {
		return nil, uc.fail(ctx, "create notification channel", err)
	}

	req := NewRequest(uc.channel.ID, snapshots[0], uc.clock.Now())
	if err := req.Validate(); err != nil {
		return nil, uc.fail(ctx, "invalid notification request", err)
	}

	if err := uc.notifier.ScheduleLocalNotification(ctx, req.ToPorts()); err != nil {
		return nil, uc.fail(ctx, "schedule local notification", err)
	}

	uc.logger.Info("Local notification scheduled",
		ports.F("id", req.ID),
		ports.F("title", req.Title),
		ports.F("fire_at", req.FireAt))
	uc.metrics.RecordNotification(ctx, OutcomeScheduled)

	return &req, nil
}

func (uc *UseCase) fail(ctx context.Context, msg string, cause error) error {
	err := errors.NewNotificationError(msg, cause)
	uc.logger.Error("Failed to schedule notification", ports.F("error", err))
	uc.metrics.RecordNotification(ctx, OutcomeFailed)
	return err
}

// Activation is a pending notification arm; Cancel stops it
type Activation struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	result *Request
	err    error
}

// Cancel stops the wait. It is safe to call more than once.
func (a *Activation) Cancel() {
	a.cancel()
}

// Done is closed once the activation has finished or been cancelled
func (a *Activation) Done() <-chan struct{} {
	return a.done
}

// Result returns the scheduled request and error once Done is closed
func (a *Activation) Result() (*Request, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result, a.err
}

func (a *Activation) finish(req *Request, err error) {
	a.mu.Lock()
	a.result, a.err = req, err
	a.mu.Unlock()
	close(a.done)
}

// Arm starts waiting for current-location weather and schedules the notification
// according to mode. The returned activation must be cancelled when the screen goes away.
func (uc *UseCase) Arm(ctx context.Context, source SnapshotSource, mode Mode) *Activation {
	if mode == "" {
		mode = uc.defaultMode
	}

	armCtx, cancel := context.WithCancel(ctx)
	a := &Activation{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer cancel()
		req, err := uc.wait(armCtx, source, mode)
		if stderrors.Is(err, context.Canceled) {
			uc.metrics.RecordNotification(ctx, OutcomeCancelled)
		}
		a.finish(req, err)
	}()

	return a
}

func (uc *UseCase) wait(ctx context.Context, source SnapshotSource, mode Mode) (*Request, error) {
	timer := time.NewTimer(uc.delay)
	defer timer.Stop()

	if mode == ModeFixedDelay {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return uc.ScheduleFromSnapshot(ctx, source.Current())
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-source.CurrentReady():
		return uc.ScheduleFromSnapshot(ctx, source.Current())
	case <-timer.C:
		uc.logger.Info("Current weather not ready before deadline", ports.F("delay", uc.delay))
		uc.metrics.RecordNotification(ctx, OutcomeSkipped)
		return nil, ErrNoWeatherData
	}
}
