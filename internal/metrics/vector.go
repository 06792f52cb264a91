package metrics

import (
	"github.com/prometheus/common/model"
)

const (
	ValueMetricName  = "dashboard_metric_value"
	ChangeMetricName = "dashboard_metric_change_percent"

	TitleLabel model.LabelName = "title"
)

// Vector converts the snapshot into one value and one change sample per metric,
// stamped with the snapshot timestamp.
func (s Snapshot) Vector() model.Vector {
	ts := model.TimeFromUnixNano(s.Timestamp.UnixNano())
	res := make(model.Vector, 0, 2*len(s.Metrics))
	for _, m := range s.Metrics {
		res = append(res,
			newSample(ValueMetricName, m.Title, m.RawValue, ts),
			newSample(ChangeMetricName, m.Title, m.ChangePercent, ts),
		)
	}
	return res
}

func newSample(name string, title Title, value float64, ts model.Time) *model.Sample {
	return &model.Sample{
		Metric: model.Metric{
			model.MetricNameLabel: model.LabelValue(name),
			TitleLabel:            model.LabelValue(title),
		},
		Value:     model.SampleValue(value),
		Timestamp: ts,
	}
}
