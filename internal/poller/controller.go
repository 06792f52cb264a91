package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/iamadya/admybrand-insights-dashboard/internal/configuration"
	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
	"github.com/iamadya/admybrand-insights-dashboard/internal/visibility"
)

type State string

const (
	Idle    State = "idle"
	Polling State = "polling"
	Stopped State = "stopped"

	DefaultInterval = 5 * time.Second
	// MetricSource labels every snapshot published to the stores.
	MetricSource = "overview"

	fetchTimeout = 15 * time.Second
)

// Controller drives the fetcher on a fixed interval and keeps the latest
// snapshot. Every fetch gets a generation; a result is applied only while the
// controller is live and its generation is still the newest one.
type Controller struct {
	fetcher Fetcher
	source  visibility.Source
	clock   clock.WithTicker
	stores  []metrics.API

	lock             sync.RWMutex
	interval         time.Duration
	snapshot         metrics.Snapshot
	generation       uint64
	state            State
	disposed         bool
	cancel           context.CancelFunc
	ticker           clock.Ticker
	latestSuccessRun time.Time
}

// NewController subscribes to source and starts polling right away unless the
// source is hidden.
func NewController(fetcher Fetcher, source visibility.Source, clk clock.WithTicker, interval time.Duration, stores ...metrics.API) *Controller {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Controller{
		fetcher:  fetcher,
		source:   source,
		clock:    clk,
		stores:   stores,
		interval: interval,
		state:    Idle,
	}

	if source != nil {
		source.Subscribe(c)
		if source.Current() == visibility.Hidden {
			log.Info("consumer is hidden, polling will start once it is visible")
			c.state = Stopped
			return c
		}
	}
	c.Start()
	return c
}

// Configure sets the polling interval used by the next Start.
func (c *Controller) Configure(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("polling interval must be positive, got %s", interval)
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.interval = interval
	return nil
}

func (c *Controller) Interval() time.Duration {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.interval
}

func (c *Controller) Snapshot() metrics.Snapshot {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.snapshot.Copy()
}

func (c *Controller) State() State {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.state
}

func (c *Controller) LatestSuccessRun() time.Time {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.latestSuccessRun
}

// Start fetches immediately and then on every tick.
func (c *Controller) Start() {
	c.lock.Lock()
	if c.disposed {
		c.lock.Unlock()
		log.Debug("ignoring start on disposed controller")
		return
	}
	// if it was started early, stop it
	c.stopTicker()

	var ctx context.Context
	ctx, c.cancel = context.WithCancel(context.Background())
	c.ticker = c.clock.NewTicker(c.interval)
	c.state = Polling
	ticks := c.ticker.C()
	interval := c.interval
	c.lock.Unlock()

	log.Infof("started polling every %s", interval)
	go c.loop(ctx, ticks)
}

func (c *Controller) loop(ctx context.Context, ticks <-chan time.Time) {
	c.fetch(ctx)
	for {
		select {
		case <-ticks:
			if ctx.Err() != nil {
				return
			}
			log.Debug("polling tick")
			c.fetch(ctx)
		case <-ctx.Done():
			log.Debug("polling ticker stopped")
			return
		}
	}
}

// Stop cancels the ticker and discards any fetch still in flight.
func (c *Controller) Stop() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.disposed {
		return
	}
	c.halt()
	c.state = Stopped
	log.Info("stopped polling")
}

// Refresh runs one fetch without touching the ticker.
func (c *Controller) Refresh() {
	go c.fetch(context.Background())
}

// Dispose stops polling for good. Later Start and Refresh calls are ignored.
func (c *Controller) Dispose() {
	if c.source != nil {
		c.source.Unsubscribe(c)
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	if c.disposed {
		return
	}
	c.halt()
	c.disposed = true
	c.state = Idle
	log.Info("disposed polling controller")
}

func (c *Controller) OnVisibilityChange(state visibility.State) {
	log.Debugf("visibility changed to '%s'", state)
	switch state {
	case visibility.Hidden:
		c.Stop()
	case visibility.Visible:
		c.Start()
	}
}

// halt must be called with the lock held.
func (c *Controller) halt() {
	c.stopTicker()
	c.generation++
	c.snapshot.IsLoading = false
}

func (c *Controller) stopTicker() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// fetch runs one cycle. ctx is checked under the lock so a tick racing with
// Stop never starts a cycle that outlives it.
func (c *Controller) fetch(ctx context.Context) {
	c.lock.Lock()
	if c.disposed || ctx.Err() != nil {
		c.lock.Unlock()
		return
	}
	c.generation++
	generation := c.generation
	c.snapshot.IsLoading = true
	c.lock.Unlock()

	fetchCtx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	data, err := c.fetcher.Fetch(fetchCtx)

	c.lock.Lock()
	if c.disposed || generation != c.generation {
		c.lock.Unlock()
		log.Debugf("discarding result of superseded fetch %d", generation)
		return
	}
	if err != nil {
		failure := AsFetchFailure(err)
		c.snapshot.IsLoading = false
		c.snapshot.Error = failure.Message
		c.lock.Unlock()
		log.Errorf("cannot fetch metrics: %v", err)
		return
	}

	snapshot := metrics.Snapshot{
		ID:        uuid.New().String(),
		Timestamp: c.clock.Now(),
		Metrics:   data,
	}
	c.snapshot = snapshot
	c.latestSuccessRun = snapshot.Timestamp
	c.lock.Unlock()

	log.Debugf("applied snapshot %s", snapshot.ID)
	c.publish(snapshot)
}

func (c *Controller) publish(snapshot metrics.Snapshot) {
	if len(c.stores) == 0 {
		return
	}
	data := snapshot.Vector()
	for _, store := range c.stores {
		err := store.AddVector(data, map[string]string{metrics.MetricSourceLabel: MetricSource})
		if err != nil {
			log.Errorf("cannot store snapshot %s: %v", snapshot.ID, err)
		}
	}
}

func (c *Controller) Init(config configuration.DashboardConfiguration) error {
	return c.Configure(config.Interval())
}

// Update applies a new interval, restarting the ticker when polling.
func (c *Controller) Update(config configuration.DashboardConfiguration) error {
	if config.Interval() == c.Interval() {
		return nil
	}
	err := c.Configure(config.Interval())
	if err != nil {
		return err
	}
	if c.State() == Polling {
		c.Start()
	}
	return nil
}

func (c *Controller) String() string {
	return "polling controller"
}
