package metrics

import (
	"time"
)

type Title string

const (
	Revenue     Title = "Revenue"
	Users       Title = "Users"
	Conversions Title = "Conversions"
	Growth      Title = "Growth%"
)

// Titles lists every metric title in display order.
var Titles = []Title{Revenue, Users, Conversions, Growth}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	// TrendNeutral is part of the data model but the generator never emits it.
	TrendNeutral Trend = "neutral"
)

// Metric is one dashboard overview card.
type Metric struct {
	Title         Title   `json:"title"`
	Value         string  `json:"value"`
	RawValue      float64 `json:"rawValue"`
	Change        string  `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Trend         Trend   `json:"trend"`
}

// Snapshot is the result of one poll cycle. A new successful cycle replaces it
// entirely; nothing is merged from the previous one.
type Snapshot struct {
	ID        string
	Timestamp time.Time
	Metrics   []Metric
	IsLoading bool
	Error     string
}

// Copy returns a snapshot that shares no memory with s.
func (s Snapshot) Copy() Snapshot {
	res := s
	if s.Metrics != nil {
		res.Metrics = make([]Metric, len(s.Metrics))
		copy(res.Metrics, s.Metrics)
	}
	return res
}

func (s Snapshot) Get(title Title) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Title == title {
			return m, true
		}
	}
	return Metric{}, false
}

func trendOf(changePercent float64) Trend {
	if changePercent >= 0 {
		return TrendUp
	}
	return TrendDown
}
