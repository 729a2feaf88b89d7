package screen

import (
	"context"
	stderrors "errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"weatherhome.app/internal/core/connectivity"
	"weatherhome.app/internal/core/location"
	"weatherhome.app/internal/core/notification"
	"weatherhome.app/internal/core/permission"
	"weatherhome.app/internal/core/weather"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

var (
	ErrAlreadyStarted = stderrors.New("screen already started")
	ErrNotStarted     = stderrors.New("screen not started")
	ErrStopped        = stderrors.New("screen stopped")
)

type ConnectivityProbe interface {
	Check(ctx context.Context) (connectivity.State, error)
}

type PermissionObserver interface {
	Last() (permission.Resolution, bool)
}

type LocationFetcher interface {
	GetLocation(ctx context.Context, opts location.Options, onLoading location.LoadingFunc) (location.Outcome, error)
}

type WeatherFeed interface {
	notification.SnapshotSource
	List() []weather.ListItem
	HasList() bool
	Find(id int64) (weather.ListItem, bool)
	Subscribe() (<-chan weather.Event, func())
}

type NotificationArmer interface {
	Arm(ctx context.Context, source notification.SnapshotSource, mode notification.Mode) *notification.Activation
}

type Deps struct {
	Connectivity     ConnectivityProbe
	Permissions      PermissionObserver
	Location         LocationFetcher
	Trigger          ports.WeatherTrigger
	Feed             WeatherFeed
	Notifications    NotificationArmer
	Navigator        ports.Navigator
	Logger           ports.Logger
	LocationOptions  location.Options
	NotificationMode notification.Mode
}

// Controller orchestrates the home screen: connectivity, location, list refresh and
// the current-location notification. Construction has no side effects; call Start.
type Controller struct {
	probe         ConnectivityProbe
	permissions   PermissionObserver
	locator       LocationFetcher
	trigger       ports.WeatherTrigger
	feed          WeatherFeed
	notifications NotificationArmer
	navigator     ports.Navigator
	logger        ports.Logger
	locationOpts  location.Options
	mode          notification.Mode

	mu           sync.RWMutex
	state        State
	connectivity string
	loading      bool
	started      bool
	stopped      bool
	ctx          context.Context
	cancel       context.CancelFunc
	activation   *notification.Activation
	unsubscribe  func()

	runMu   sync.Mutex
	watcher sync.WaitGroup
}

func New(deps Deps) (*Controller, error) {
	if deps.Connectivity == nil {
		return nil, errors.NewValidationError("connectivity probe is required")
	}
	if deps.Permissions == nil {
		return nil, errors.NewValidationError("permission observer is required")
	}
	if deps.Location == nil {
		return nil, errors.NewValidationError("location fetcher is required")
	}
	if deps.Trigger == nil {
		return nil, errors.NewValidationError("weather trigger is required")
	}
	if deps.Feed == nil {
		return nil, errors.NewValidationError("weather feed is required")
	}
	if deps.Notifications == nil {
		return nil, errors.NewValidationError("notification scheduler is required")
	}
	if deps.Navigator == nil {
		return nil, errors.NewValidationError("navigator is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &Controller{
		probe:         deps.Connectivity,
		permissions:   deps.Permissions,
		locator:       deps.Location,
		trigger:       deps.Trigger,
		feed:          deps.Feed,
		notifications: deps.Notifications,
		navigator:     deps.Navigator,
		logger:        deps.Logger,
		locationOpts:  deps.LocationOptions,
		mode:          deps.NotificationMode,
		state:         StateInitializing,
		connectivity:  "unknown",
	}, nil
}

// Start activates the screen: it arms the notification and runs the probe-and-fetch
// sequence, returning once the sequence has finished. Start may only be called once.
// Cancelling ctx aborts this first run only; the screen lives until Stop.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(context.WithoutCancel(ctx))
	events, unsubscribe := c.feed.Subscribe()
	c.unsubscribe = unsubscribe
	c.activation = c.notifications.Arm(c.ctx, c.feed, c.mode)
	base := c.ctx
	c.mu.Unlock()

	c.watcher.Add(1)
	go c.watchFeed(events)

	runCtx, cancel := context.WithCancel(base)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	c.logger.Info("Home screen started")
	return c.run(runCtx)
}

// Retry reruns the probe-and-fetch sequence after a failed connectivity check.
// It is a no-op while the screen is connected. The run is bound to the screen
// lifetime rather than to the caller's context.
func (c *Controller) Retry(_ context.Context) error {
	c.mu.RLock()
	started, stopped, state, base := c.started, c.stopped, c.state, c.ctx
	c.mu.RUnlock()

	switch {
	case stopped:
		return ErrStopped
	case !started:
		return ErrNotStarted
	case state != StateDisconnected:
		c.logger.Debug("Retry ignored, screen is not disconnected", ports.F("state", state.String()))
		return nil
	}

	c.logger.Info("Retrying connectivity check")
	return c.run(base)
}

// Stop tears the screen down. Pending notification waits and in-flight location
// requests are cancelled; late callbacks no longer change the view.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	cancel, activation, unsubscribe := c.cancel, c.activation, c.unsubscribe
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if activation != nil {
		activation.Cancel()
		<-activation.Done()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	c.watcher.Wait()

	c.logger.Info("Home screen stopped")
}

// View returns the current screen snapshot
func (c *Controller) View() View {
	c.mu.RLock()
	state, conn, loading := c.state, c.connectivity, c.loading
	c.mu.RUnlock()

	v := View{
		State:           state.String(),
		Connectivity:    conn,
		Loading:         loading,
		Items:           []weather.ListItem{},
		Current:         []weather.CurrentSnapshot{},
		PermissionState: permission.StateUnknown.String(),
	}

	if res, ok := c.permissions.Last(); ok {
		v.PermissionState = res.State.String()
		v.SettingsHint = res.NeedsSettings()
	}

	switch state {
	case StateDisconnected:
		v.ShowRetry = true
		v.RetryLabel = RetryLabel
		v.Title = NoConnectionTitle
		v.Message = NoConnectionMessage
	case StateConnectedLoading, StateConnectedLoaded:
		v.Items = c.feed.List()
		v.Current = c.feed.Current()
	}

	return v
}

// SelectItem navigates to the details screen with the selected entry
func (c *Controller) SelectItem(id int64) error {
	item, ok := c.feed.Find(id)
	if !ok {
		return errors.NewNotFoundError("weather item not found")
	}

	c.navigator.Navigate(DetailsScreen, map[string]interface{}{DetailsParam: item})
	c.logger.Debug("Navigated to details", ports.F("id", id), ports.F("name", item.Name))
	return nil
}

func (c *Controller) run(ctx context.Context) error {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.setState(ctx, StateInitializing)

	conn, err := c.probe.Check(ctx)
	if ctx.Err() != nil {
		c.abandon()
		return c.interrupted(ctx.Err())
	}
	c.setConnectivity(ctx, conn)

	if !conn.IsConnected() {
		c.logger.Info("No network connection, showing retry", ports.F("error", err))
		c.setState(ctx, StateDisconnected)
		return nil
	}

	c.setConnected(ctx)

	// Location failures stay on the screen; only an interrupted run is reported.
	var g errgroup.Group
	g.Go(func() error {
		c.trigger.RefreshCityList(ctx)
		return ctx.Err()
	})
	g.Go(func() error {
		outcome, err := c.locator.GetLocation(ctx, c.locationOpts, func(loading bool) {
			c.setLoading(ctx, loading)
		})
		if err != nil {
			c.logger.Debug("Current location weather unavailable",
				ports.F("status", outcome.Status.String()),
				ports.F("error", err))
		}
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return c.interrupted(err)
	}
	return nil
}

// interrupted reports ErrStopped when the run ended because of Stop
func (c *Controller) interrupted(err error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stopped {
		return ErrStopped
	}
	return err
}

func (c *Controller) watchFeed(events <-chan weather.Event) {
	defer c.watcher.Done()
	for ev := range events {
		if ev.Kind != weather.EventList {
			continue
		}
		c.mu.Lock()
		if !c.stopped && c.state == StateConnectedLoading {
			c.state = StateConnectedLoaded
		}
		c.mu.Unlock()
	}
}

// abandon returns an interrupted probe to the retry view
func (c *Controller) abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped && c.state == StateInitializing {
		c.state = StateDisconnected
	}
}

func (c *Controller) setState(ctx context.Context, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || ctx.Err() != nil {
		return
	}
	c.state = state
}

// setConnected checks the feed under the lock so a list published concurrently is
// either seen here or by watchFeed afterwards.
func (c *Controller) setConnected(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || ctx.Err() != nil {
		return
	}
	if c.feed.HasList() {
		c.state = StateConnectedLoaded
	} else {
		c.state = StateConnectedLoading
	}
}

func (c *Controller) setConnectivity(ctx context.Context, state connectivity.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || ctx.Err() != nil {
		return
	}
	c.connectivity = state.String()
}

func (c *Controller) setLoading(ctx context.Context, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || (loading && ctx.Err() != nil) {
		return
	}
	c.loading = loading
}
