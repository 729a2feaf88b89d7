package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"weatherhome.app/internal/core/weather"
	"weatherhome.app/internal/mocks"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var activationTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, notifier ports.LocalNotifier, delay time.Duration) (*UseCase, *mocks.Logger, *mocks.Metrics) {
	t.Helper()
	logger := mocks.NewLogger()
	metrics := mocks.NewMetrics()
	uc, err := NewUseCase(UseCaseDependencies{
		Notifier: notifier,
		Clock:    mocks.NewClock(activationTime),
		Logger:   logger,
		Metrics:  metrics,
		Delay:    delay,
	})
	require.NoError(t, err)
	return uc, logger, metrics
}

func pune() []weather.CurrentSnapshot {
	return []weather.CurrentSnapshot{{Name: "Pune", Temp: 29.5, Icon: "01d"}}
}

func waitDone(t *testing.T, a *Activation) (*Request, error) {
	t.Helper()
	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("activation did not finish")
	}
	return a.Result()
}

func TestNewUseCase_Validation(t *testing.T) {
	_, err := NewUseCase(UseCaseDependencies{})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewUseCase(UseCaseDependencies{Notifier: mocks.NewInMemoryNotifier()})
	assert.True(t, errors.IsValidationError(err))

	uc, err := NewUseCase(UseCaseDependencies{
		Notifier: mocks.NewInMemoryNotifier(),
		Clock:    mocks.NewClock(activationTime),
		Logger:   mocks.NewLogger(),
		Metrics:  mocks.NewMetrics(),
	})
	require.NoError(t, err)
	assert.Equal(t, ModeAwaitData, uc.DefaultMode())
	assert.Equal(t, ActivationDelay, uc.delay)
	assert.Equal(t, DefaultChannelName, uc.channel.Name)
}

func TestScheduleFromSnapshot_EmptySequenceMakesNoCalls(t *testing.T) {
	notifier := mocks.NewLocalNotifier(t)
	uc, _, metrics := newTestUseCase(t, notifier, 0)

	req, err := uc.ScheduleFromSnapshot(context.Background(), nil)

	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrNoWeatherData)
	notifier.AssertNotCalled(t, "CancelAllLocalNotifications", mock.Anything)
	notifier.AssertNotCalled(t, "CreateChannel", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "ScheduleLocalNotification", mock.Anything, mock.Anything)
	assert.Equal(t, 1, metrics.Count("notification:skipped"))
}

func TestScheduleFromSnapshot_CancelThenSchedule(t *testing.T) {
	notifier := mocks.NewLocalNotifier(t)
	uc, _, metrics := newTestUseCase(t, notifier, 0)

	var order []string
	notifier.On("CancelAllLocalNotifications", mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "cancel") }).
		Return(nil).Once()
	notifier.On("CreateChannel", mock.Anything, ports.NotificationChannel{ID: "weqs-123-wede", Name: "Weather App"}).
		Run(func(mock.Arguments) { order = append(order, "channel") }).
		Return(true, nil).Once()
	notifier.On("ScheduleLocalNotification", mock.Anything, mock.MatchedBy(func(n ports.LocalNotification) bool {
		return n.Title == "Pune" &&
			strings.Contains(n.Message, "29.5°C") &&
			strings.HasSuffix(n.LargeIconURL, "01d@2x.png") &&
			n.FireAt.Equal(activationTime.Add(3*time.Second)) &&
			n.RepeatType == "minute" &&
			n.ChannelID == "weqs-123-wede"
	})).
		Run(func(mock.Arguments) { order = append(order, "schedule") }).
		Return(nil).Once()

	req, err := uc.ScheduleFromSnapshot(context.Background(), pune())

	require.NoError(t, err)
	assert.Equal(t, []string{"cancel", "channel", "schedule"}, order)
	assert.Equal(t, "Current temperature is 29.5°C", req.Message)
	assert.Equal(t, 1, metrics.Count("notification:scheduled"))
}

func TestScheduleFromSnapshot_UsesFirstEntry(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	uc, _, _ := newTestUseCase(t, notifier, 0)

	req, err := uc.ScheduleFromSnapshot(context.Background(), []weather.CurrentSnapshot{
		{Name: "Pune", Temp: 29.5, Icon: "01d"},
		{Name: "Mumbai", Temp: 31, Icon: "02d"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Pune", req.Title)
}

func TestScheduleFromSnapshot_Failures(t *testing.T) {
	t.Run("channel creation fails", func(t *testing.T) {
		notifier := mocks.NewLocalNotifier(t)
		uc, logger, metrics := newTestUseCase(t, notifier, 0)

		notifier.On("CancelAllLocalNotifications", mock.Anything).Return(nil).Once()
		notifier.On("CreateChannel", mock.Anything, mock.Anything).Return(false, fmt.Errorf("channel service down")).Once()

		_, err := uc.ScheduleFromSnapshot(context.Background(), pune())

		assert.True(t, errors.IsNotificationError(err))
		notifier.AssertNotCalled(t, "ScheduleLocalNotification", mock.Anything, mock.Anything)
		_, logged := logger.Find("Failed to schedule notification")
		assert.True(t, logged)
		assert.Equal(t, 1, metrics.Count("notification:failed"))
	})

	t.Run("scheduling fails", func(t *testing.T) {
		notifier := mocks.NewLocalNotifier(t)
		uc, _, _ := newTestUseCase(t, notifier, 0)

		notifier.On("CancelAllLocalNotifications", mock.Anything).Return(nil).Once()
		notifier.On("CreateChannel", mock.Anything, mock.Anything).Return(false, nil).Once()
		notifier.On("ScheduleLocalNotification", mock.Anything, mock.Anything).Return(fmt.Errorf("alarm manager unavailable")).Once()

		_, err := uc.ScheduleFromSnapshot(context.Background(), pune())

		assert.True(t, errors.IsNotificationError(err))
	})

	t.Run("cancel fails", func(t *testing.T) {
		notifier := mocks.NewLocalNotifier(t)
		uc, _, _ := newTestUseCase(t, notifier, 0)

		notifier.On("CancelAllLocalNotifications", mock.Anything).Return(fmt.Errorf("denied")).Once()

		_, err := uc.ScheduleFromSnapshot(context.Background(), pune())

		assert.True(t, errors.IsNotificationError(err))
		notifier.AssertNotCalled(t, "CreateChannel", mock.Anything, mock.Anything)
	})
}

func TestScheduleFromSnapshot_AtMostOnePending(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	uc, _, _ := newTestUseCase(t, notifier, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.ScheduleFromSnapshot(context.Background(), pune())
		}()
	}
	wg.Wait()

	pending, err := notifier.PendingNotifications(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	calls := notifier.Calls()
	require.Len(t, calls, 24)
	for i := 0; i < len(calls); i += 3 {
		assert.Equal(t, []string{"cancel", "channel", "schedule"}, calls[i:i+3])
	}
}

func TestArm_AwaitData_SchedulesWhenReady(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	uc, _, _ := newTestUseCase(t, notifier, 5*time.Second)
	feed := weather.NewFeed()

	a := uc.Arm(context.Background(), feed, ModeAwaitData)
	defer a.Cancel()

	feed.PublishCurrentWeather([]ports.CityWeather{{Name: "Pune", Temp: 29.5, Icon: "01d"}})

	req, err := waitDone(t, a)
	require.NoError(t, err)
	assert.Equal(t, "Pune", req.Title)
	assert.True(t, strings.HasSuffix(req.LargeIconURL, "01d@2x.png"))

	pending, _ := notifier.PendingNotifications(context.Background())
	assert.Len(t, pending, 1)
}

func TestArm_AwaitData_DeadlineWithoutData(t *testing.T) {
	notifier := mocks.NewLocalNotifier(t)
	uc, _, metrics := newTestUseCase(t, notifier, 20*time.Millisecond)

	a := uc.Arm(context.Background(), weather.NewFeed(), ModeAwaitData)

	req, err := waitDone(t, a)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrNoWeatherData)
	assert.Equal(t, 1, metrics.Count("notification:skipped"))
}

func TestArm_FixedDelay_ReadsAfterDelay(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	uc, _, _ := newTestUseCase(t, notifier, 30*time.Millisecond)
	feed := weather.NewFeed()
	feed.PublishCurrentWeather([]ports.CityWeather{{Name: "Delhi", Temp: 35, Icon: "01n"}})

	start := time.Now()
	a := uc.Arm(context.Background(), feed, ModeFixedDelay)

	req, err := waitDone(t, a)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, "Delhi", req.Title)
	assert.Equal(t, "Current temperature is 35°C", req.Message)
}

func TestArm_FixedDelay_EmptyFeed(t *testing.T) {
	notifier := mocks.NewLocalNotifier(t)
	uc, _, _ := newTestUseCase(t, notifier, 10*time.Millisecond)

	a := uc.Arm(context.Background(), weather.NewFeed(), ModeFixedDelay)

	_, err := waitDone(t, a)
	assert.ErrorIs(t, err, ErrNoWeatherData)
}

func TestArm_Cancel(t *testing.T) {
	for _, mode := range []Mode{ModeAwaitData, ModeFixedDelay} {
		t.Run(string(mode), func(t *testing.T) {
			notifier := mocks.NewLocalNotifier(t)
			uc, _, metrics := newTestUseCase(t, notifier, 5*time.Second)

			a := uc.Arm(context.Background(), weather.NewFeed(), mode)
			a.Cancel()
			a.Cancel()

			req, err := waitDone(t, a)
			assert.Nil(t, req)
			assert.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, 1, metrics.Count("notification:cancelled"))
		})
	}
}

func TestArm_TwoActivationsLeaveOnePending(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	uc, _, _ := newTestUseCase(t, notifier, time.Second)
	feed := weather.NewFeed()
	feed.PublishCurrentWeather([]ports.CityWeather{{Name: "Pune", Temp: 29.5, Icon: "01d"}})

	first := uc.Arm(context.Background(), feed, "")
	second := uc.Arm(context.Background(), feed, "")

	_, err := waitDone(t, first)
	require.NoError(t, err)
	_, err = waitDone(t, second)
	require.NoError(t, err)

	pending, _ := notifier.PendingNotifications(context.Background())
	assert.Len(t, pending, 1)
}
