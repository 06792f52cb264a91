package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"git.sr.ht/~spc/go-log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/model"

	"github.com/iamadya/admybrand-insights-dashboard/internal/configuration"
)

const (
	MetricSourceLabel = "metric-source"

	sourceLabel = "source"
	titleLabel  = "title"
)

//go:generate mockgen -package=metrics -destination=mock_api.go . API
type API interface {
	AddVector(data model.Vector, labels map[string]string) error
}

// Exporter keeps the latest published samples as Prometheus gauges so they
// can be scraped.
type Exporter struct {
	registry  *prometheus.Registry
	values    *prometheus.GaugeVec
	changes   *prometheus.GaugeVec
	updates   *prometheus.CounterVec
	lock      sync.RWMutex
	allowList SampleFilter
}

func NewExporter(allowList SampleFilter) *Exporter {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	if allowList == nil {
		allowList = &PermissiveAllowList{}
	}

	return &Exporter{
		registry: registry,
		values: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: ValueMetricName,
				Help: "Latest raw value of a dashboard metric",
			}, []string{sourceLabel, titleLabel}),
		changes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: ChangeMetricName,
				Help: "Latest month over month change of a dashboard metric, in percent",
			}, []string{sourceLabel, titleLabel}),
		updates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_snapshot_updates_total",
				Help: "The total of snapshots published by a source",
			}, []string{sourceLabel}),
		allowList: allowList,
	}
}

func (e *Exporter) AddVector(data model.Vector, labels map[string]string) error {
	source := labels[MetricSourceLabel]

	e.lock.RLock()
	filtered := e.allowList.Filter(data)
	e.lock.RUnlock()

	for _, sample := range filtered {
		title := string(sample.Metric[TitleLabel])
		switch string(sample.Metric[model.MetricNameLabel]) {
		case ValueMetricName:
			e.values.WithLabelValues(source, title).Set(float64(sample.Value))
		case ChangeMetricName:
			e.changes.WithLabelValues(source, title).Set(float64(sample.Value))
		default:
			return fmt.Errorf("unknown sample '%s'", sample.Metric)
		}
	}
	e.updates.WithLabelValues(source).Inc()
	log.Tracef("exported %d of %d samples for source '%s'", len(filtered), len(data), source)
	return nil
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

func (e *Exporter) Init(config configuration.DashboardConfiguration) error {
	return e.Update(config)
}

// Update swaps the allow list. Gauges already exported for titles that are no
// longer allowed are dropped.
func (e *Exporter) Update(config configuration.DashboardConfiguration) error {
	allowList := NewAllowList(config.ExportAllowList)

	e.lock.Lock()
	defer e.lock.Unlock()
	e.allowList = allowList
	if len(config.ExportAllowList) > 0 {
		e.values.Reset()
		e.changes.Reset()
	}
	return nil
}

func (e *Exporter) String() string {
	return "metrics exporter"
}
