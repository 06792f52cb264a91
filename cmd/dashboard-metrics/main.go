package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.sr.ht/~spc/go-log"
	"k8s.io/utils/clock"

	"github.com/iamadya/admybrand-insights-dashboard/internal/api"
	"github.com/iamadya/admybrand-insights-dashboard/internal/configuration"
	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
	"github.com/iamadya/admybrand-insights-dashboard/internal/poller"
	"github.com/iamadya/admybrand-insights-dashboard/internal/visibility"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logLevel, ok := os.LookupEnv(configuration.EnvPrefix + "LOG_LEVEL")
	if !ok {
		logLevel = configuration.DefaultConfiguration().LogLevel
	}
	setLogLevel(logLevel)

	configManager, err := configuration.NewConfigurationManager(os.Getenv(configuration.EnvPrefix + "CONFIG"))
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	cfg := configManager.GetConfiguration()
	configManager.RegisterObserver(newProcessObserver())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Infof("metrics seed: %d", seed)

	clk := clock.RealClock{}
	fetcher := poller.NewSimulatedFetcher(metrics.NewGenerator(rand.NewSource(seed)), clk, rand.NewSource(seed+1))
	configManager.RegisterObserver(fetcher)

	exporter := metrics.NewExporter(nil)
	configManager.RegisterObserver(exporter)

	source, closeSource := newVisibilitySource(cfg.PauseFile)

	controller := poller.NewController(fetcher, source, clk, cfg.Interval(), exporter)
	configManager.RegisterObserver(controller)

	server := api.NewServer(cfg.ListenAddress, api.NewDashboardHandler(controller, source), exporter.Handler())

	setupSignalHandler(configManager, func() {
		controller.Dispose()
		closeSource()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error(err)
		}
	})

	if err := server.Start(); err != nil {
		log.Fatalf("cannot start dashboard API, err: %v", err)
	}
	log.Info("dashboard stopped")
}

func newVisibilitySource(pauseFile string) (visibility.Source, func()) {
	if pauseFile == "" {
		return visibility.NewManual(visibility.Visible), func() {}
	}

	source := visibility.NewFileSource(pauseFile)
	if err := source.Start(); err != nil {
		log.Fatalf("cannot watch pause file %s: %v", pauseFile, err)
	}
	return source, func() {
		if err := source.Close(); err != nil {
			log.Error(err)
		}
	}
}

func setupSignalHandler(configManager *configuration.Manager, shutdown func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range c {
			if sig == syscall.SIGHUP {
				log.Info("Got SIGHUP signal. Reloading configuration")
				if err := configManager.Reload(); err != nil {
					log.Errorf("cannot reload configuration: %v", err)
				}
				continue
			}
			log.Infof("Got %s signal. Aborting...", sig)
			signal.Stop(c)
			shutdown()
			return
		}
	}()
}

func setLogLevel(logLevel string) {
	level, err := configuration.ParseLogLevel(logLevel)
	if err != nil {
		log.Warnf("invalid log level '%s', using info", logLevel)
		level = log.LevelInfo
	}
	log.SetLevel(level)
}
