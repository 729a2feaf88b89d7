// Package mocks provides testify mocks and small fakes for the ports package.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherhome.app/internal/ports"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// NetworkReachability is a mock of ports.NetworkReachability
type NetworkReachability struct {
	mock.Mock
}

func NewNetworkReachability(t testingT) *NetworkReachability {
	m := &NetworkReachability{}
	register(&m.Mock, t)
	return m
}

func (m *NetworkReachability) IsConnected(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// LocationPermissionAPI is a mock of ports.LocationPermissionAPI
type LocationPermissionAPI struct {
	mock.Mock
}

func NewLocationPermissionAPI(t testingT) *LocationPermissionAPI {
	m := &LocationPermissionAPI{}
	register(&m.Mock, t)
	return m
}

func (m *LocationPermissionAPI) Check(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *LocationPermissionAPI) Request(ctx context.Context) (ports.PermissionResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.PermissionResult), args.Error(1)
}

func (m *LocationPermissionAPI) RequestAuthorization(ctx context.Context) (ports.PermissionResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.PermissionResult), args.Error(1)
}

// PositionProvider is a mock of ports.PositionProvider
type PositionProvider struct {
	mock.Mock
}

func NewPositionProvider(t testingT) *PositionProvider {
	m := &PositionProvider{}
	register(&m.Mock, t)
	return m
}

func (m *PositionProvider) CurrentPosition(ctx context.Context, req ports.PositionRequest) (ports.Position, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Position), args.Error(1)
}

// Navigator is a mock of ports.Navigator
type Navigator struct {
	mock.Mock
}

func NewNavigator(t testingT) *Navigator {
	m := &Navigator{}
	register(&m.Mock, t)
	return m
}

func (m *Navigator) Navigate(screen string, params map[string]interface{}) {
	m.Called(screen, params)
}

// Platform is a fixed ports.PlatformInfo
type Platform struct {
	Name  string
	Level int
}

func (p Platform) OS() string    { return p.Name }
func (p Platform) APILevel() int { return p.Level }

// Clock is a settable ports.Clock
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
