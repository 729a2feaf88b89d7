package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherhome.app/internal/ports"
)

// LocalNotifier is a mock of ports.LocalNotifier
type LocalNotifier struct {
	mock.Mock
}

func NewLocalNotifier(t testingT) *LocalNotifier {
	m := &LocalNotifier{}
	register(&m.Mock, t)
	return m
}

func (m *LocalNotifier) CancelAllLocalNotifications(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *LocalNotifier) CreateChannel(ctx context.Context, channel ports.NotificationChannel) (bool, error) {
	args := m.Called(ctx, channel)
	return args.Bool(0), args.Error(1)
}

func (m *LocalNotifier) ScheduleLocalNotification(ctx context.Context, n ports.LocalNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *LocalNotifier) PendingNotifications(ctx context.Context) ([]ports.LocalNotification, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]ports.LocalNotification)
	return items, args.Error(1)
}

// NotificationDelivery is a mock of ports.NotificationDelivery
type NotificationDelivery struct {
	mock.Mock
}

func NewNotificationDelivery(t testingT) *NotificationDelivery {
	m := &NotificationDelivery{}
	register(&m.Mock, t)
	return m
}

func (m *NotificationDelivery) Deliver(ctx context.Context, title, message string) error {
	args := m.Called(ctx, title, message)
	return args.Error(0)
}

// NotificationRepository is a mock of ports.NotificationRepository
type NotificationRepository struct {
	mock.Mock
}

func NewNotificationRepository(t testingT) *NotificationRepository {
	m := &NotificationRepository{}
	register(&m.Mock, t)
	return m
}

func (m *NotificationRepository) SaveChannel(ctx context.Context, channel ports.NotificationChannel) (bool, error) {
	args := m.Called(ctx, channel)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) ChannelExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) SaveNotification(ctx context.Context, record *ports.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *NotificationRepository) CancelPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) RecordDelivery(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *NotificationRepository) ListNotifications(ctx context.Context, status string) ([]*ports.NotificationRecord, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]*ports.NotificationRecord)
	return items, args.Error(1)
}

// InMemoryNotifier is a ports.LocalNotifier that keeps pending notifications in memory
// and records the order of calls
type InMemoryNotifier struct {
	mu       sync.Mutex
	pending  map[string]ports.LocalNotification
	channels map[string]ports.NotificationChannel
	calls    []string
}

func NewInMemoryNotifier() *InMemoryNotifier {
	return &InMemoryNotifier{
		pending:  make(map[string]ports.LocalNotification),
		channels: make(map[string]ports.NotificationChannel),
	}
}

func (f *InMemoryNotifier) CancelAllLocalNotifications(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "cancel")
	f.pending = make(map[string]ports.LocalNotification)
	return nil
}

func (f *InMemoryNotifier) CreateChannel(_ context.Context, ch ports.NotificationChannel) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "channel")
	_, exists := f.channels[ch.ID]
	f.channels[ch.ID] = ch
	return !exists, nil
}

func (f *InMemoryNotifier) ScheduleLocalNotification(_ context.Context, n ports.LocalNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "schedule")
	f.pending[n.ID] = n
	return nil
}

func (f *InMemoryNotifier) PendingNotifications(_ context.Context) ([]ports.LocalNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.LocalNotification, 0, len(f.pending))
	for _, n := range f.pending {
		out = append(out, n)
	}
	return out, nil
}

// Calls returns the operations seen so far: cancel, channel, schedule
func (f *InMemoryNotifier) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
