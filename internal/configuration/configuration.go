package configuration

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"
)

const EnvPrefix = "DASHBOARD_"

// DashboardConfiguration is read from defaults, then the optional config file
// (YAML or JSON), then DASHBOARD_* environment variables.
type DashboardConfiguration struct {
	IntervalMs      int64    `json:"intervalMs" env:"INTERVAL_MS"`
	Seed            int64    `json:"seed" env:"SEED"`
	LatencyMinMs    int64    `json:"latencyMinMs" env:"LATENCY_MIN_MS"`
	LatencyMaxMs    int64    `json:"latencyMaxMs" env:"LATENCY_MAX_MS"`
	FailureRate     float64  `json:"failureRate" env:"FAILURE_RATE"`
	ListenAddress   string   `json:"listenAddress" env:"LISTEN_ADDRESS"`
	PauseFile       string   `json:"pauseFile" env:"PAUSE_FILE"`
	ExportAllowList []string `json:"exportAllowList" env:"EXPORT_ALLOW_LIST" envSeparator:","`
	LogLevel        string   `json:"logLevel" env:"LOG_LEVEL"`
}

func DefaultConfiguration() DashboardConfiguration {
	return DashboardConfiguration{
		IntervalMs:    5000,
		LatencyMinMs:  100,
		LatencyMaxMs:  300,
		ListenAddress: "127.0.0.1:8089",
		LogLevel:      "info",
	}
}

func (c DashboardConfiguration) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c DashboardConfiguration) LatencyMin() time.Duration {
	return time.Duration(c.LatencyMinMs) * time.Millisecond
}

func (c DashboardConfiguration) LatencyMax() time.Duration {
	return time.Duration(c.LatencyMaxMs) * time.Millisecond
}

// Validate reports every violation at once.
func (c DashboardConfiguration) Validate() error {
	var errors error
	if c.IntervalMs <= 0 {
		errors = multierror.Append(errors, fmt.Errorf("intervalMs must be positive, got %d", c.IntervalMs))
	}
	if c.LatencyMinMs < 0 {
		errors = multierror.Append(errors, fmt.Errorf("latencyMinMs must not be negative, got %d", c.LatencyMinMs))
	}
	if c.LatencyMaxMs < c.LatencyMinMs {
		errors = multierror.Append(errors, fmt.Errorf("latencyMaxMs (%d) is lower than latencyMinMs (%d)", c.LatencyMaxMs, c.LatencyMinMs))
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		errors = multierror.Append(errors, fmt.Errorf("failureRate must be within [0, 1], got %v", c.FailureRate))
	}
	if c.ListenAddress == "" {
		errors = multierror.Append(errors, fmt.Errorf("listenAddress cannot be empty"))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errors = multierror.Append(errors, fmt.Errorf("invalid logLevel '%s': %s", c.LogLevel, err))
	}
	return errors
}

// ParseLogLevel accepts level names in any case.
func ParseLogLevel(level string) (log.Level, error) {
	return log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
}

//go:generate mockgen -package=configuration -destination=configuration_mock.go . Observer
type Observer interface {
	Init(configuration DashboardConfiguration) error
	Update(configuration DashboardConfiguration) error
	String() string
}

type Manager struct {
	configuration DashboardConfiguration

	observers  []Observer
	configFile string
	lock       sync.RWMutex
}

func NewConfigurationManager(configFile string) (*Manager, error) {
	cfg, err := Load(configFile)
	if err != nil {
		return nil, err
	}
	return &Manager{
		configuration: cfg,
		observers:     make([]Observer, 0),
		configFile:    configFile,
	}, nil
}

// Load reads and validates the configuration. A missing file is not an error.
func Load(configFile string) (DashboardConfiguration, error) {
	cfg := DefaultConfiguration()

	if configFile != "" {
		file, err := os.ReadFile(configFile) //#nosec
		switch {
		case os.IsNotExist(err):
			log.Infof("config file '%s' not found, using defaults", configFile)
		case err != nil:
			return cfg, fmt.Errorf("cannot read config file '%s': %s", configFile, err)
		default:
			err = yaml.Unmarshal(file, &cfg)
			if err != nil {
				return cfg, fmt.Errorf("cannot parse config file '%s': %s", configFile, err)
			}
		}
	}

	err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return cfg, fmt.Errorf("cannot parse environment: %s", err)
	}

	return cfg, cfg.Validate()
}

func (m *Manager) String() string {
	return "configuration manager"
}

func (m *Manager) RegisterObserver(observer Observer) {
	// Init always runs so the observer starts from the current config.
	err := observer.Init(m.GetConfiguration())
	if err != nil {
		log.Errorf("running config init observer for '%T' failed: %v", observer, err)
	}
	m.lock.Lock()
	m.observers = append(m.observers, observer)
	m.lock.Unlock()
}

func (m *Manager) GetConfiguration() DashboardConfiguration {
	m.lock.RLock()
	defer m.lock.RUnlock()
	res := m.configuration
	res.ExportAllowList = append([]string(nil), m.configuration.ExportAllowList...)
	return res
}

// Reload re-reads the configuration and notifies observers when it changed.
// An invalid configuration is rejected and the current one is kept.
func (m *Manager) Reload() error {
	cfg, err := Load(m.configFile)
	if err != nil {
		return err
	}
	return m.Update(cfg)
}

func (m *Manager) Update(cfg DashboardConfiguration) error {
	m.lock.Lock()
	if reflect.DeepEqual(cfg, m.configuration) {
		m.lock.Unlock()
		log.Trace("configuration didn't change")
		return nil
	}
	log.Infof("updating configuration. New config: %+v\nOld config: %+v", cfg, m.configuration)
	m.configuration = cfg
	observers := append([]Observer(nil), m.observers...)
	m.lock.Unlock()

	var errors error
	for _, observer := range observers {
		err := observer.Update(cfg)
		if err != nil {
			errors = multierror.Append(errors, fmt.Errorf("running update for observer '%T' failed: %s", observer, err))
		}
	}
	return errors
}
