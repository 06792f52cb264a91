package poller

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"

	"github.com/iamadya/admybrand-insights-dashboard/internal/configuration"
	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
)

//go:generate mockgen -package=poller -destination=mock_fetcher.go . Fetcher
type Fetcher interface {
	Fetch(ctx context.Context) ([]metrics.Metric, error)
}

// FetchFailure is the only error a fetch cycle surfaces to consumers.
type FetchFailure struct {
	Message string
	cause   error
}

func NewFetchFailure(format string, args ...interface{}) *FetchFailure {
	return &FetchFailure{Message: fmt.Sprintf(format, args...)}
}

func (f *FetchFailure) Error() string {
	return f.Message
}

func (f *FetchFailure) Unwrap() error {
	return f.cause
}

// AsFetchFailure returns err as a FetchFailure, wrapping it when needed.
func AsFetchFailure(err error) *FetchFailure {
	var failure *FetchFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &FetchFailure{Message: err.Error(), cause: err}
}

// SimulatedFetcher stands in for a remote backend: it waits a random latency
// on the injected clock, may fail, then returns freshly generated metrics.
type SimulatedFetcher struct {
	generator *metrics.Generator
	clock     clock.Clock

	lock        sync.Mutex
	rnd         *rand.Rand
	latencyMin  time.Duration
	latencyMax  time.Duration
	failureRate float64
}

func NewSimulatedFetcher(generator *metrics.Generator, clk clock.Clock, source rand.Source) *SimulatedFetcher {
	cfg := configuration.DefaultConfiguration()
	return &SimulatedFetcher{
		generator:   generator,
		clock:       clk,
		rnd:         rand.New(source), //#nosec
		latencyMin:  cfg.LatencyMin(),
		latencyMax:  cfg.LatencyMax(),
		failureRate: cfg.FailureRate,
	}
}

func (f *SimulatedFetcher) Fetch(ctx context.Context) ([]metrics.Metric, error) {
	latency, fail := f.next()
	log.Tracef("simulated fetch latency %s", latency)

	if latency > 0 {
		timer := f.clock.NewTimer(latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &FetchFailure{
				Message: "Failed to fetch metrics: request cancelled",
				cause:   errors.Wrap(ctx.Err(), "simulated fetch"),
			}
		case <-timer.C():
		}
	}

	if fail {
		return nil, NewFetchFailure("Failed to fetch metrics")
	}
	return f.generator.Generate(), nil
}

func (f *SimulatedFetcher) next() (time.Duration, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	latency := f.latencyMin
	if spread := int64(f.latencyMax - f.latencyMin); spread > 0 {
		latency += time.Duration(f.rnd.Int63n(spread + 1))
	}
	fail := f.failureRate > 0 && f.rnd.Float64() < f.failureRate
	return latency, fail
}

func (f *SimulatedFetcher) Init(config configuration.DashboardConfiguration) error {
	return f.Update(config)
}

func (f *SimulatedFetcher) Update(config configuration.DashboardConfiguration) error {
	if config.LatencyMaxMs < config.LatencyMinMs {
		return fmt.Errorf("latency range [%d, %d] is empty", config.LatencyMinMs, config.LatencyMaxMs)
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.latencyMin = config.LatencyMin()
	f.latencyMax = config.LatencyMax()
	f.failureRate = config.FailureRate
	return nil
}

func (f *SimulatedFetcher) String() string {
	return "simulated fetcher"
}
