package metrics

import (
	"math/rand"
	"sync"
)

// Baseline holds the fixed values a metric is perturbed around. Variations are
// the half-width of the uniform band, in percent of the baseline.
type Baseline struct {
	Title           Title
	Value           float64
	Variation       float64
	Change          float64
	ChangeVariation float64
}

var DefaultBaselines = []Baseline{
	{Title: Revenue, Value: 54231, Variation: 3, Change: 12.5, ChangeVariation: 20},
	{Title: Users, Value: 14432, Variation: 4, Change: 8.2, ChangeVariation: 25},
	{Title: Conversions, Value: 2847, Variation: 6, Change: 15.3, ChangeVariation: 30},
	{Title: Growth, Value: 24.8, Variation: 8, Change: 4.1, ChangeVariation: 40},
}

type Generator struct {
	lock      sync.Mutex
	rnd       *rand.Rand
	baselines []Baseline
}

func NewGenerator(source rand.Source) *Generator {
	return NewGeneratorWithBaselines(source, DefaultBaselines)
}

func NewGeneratorWithBaselines(source rand.Source, baselines []Baseline) *Generator {
	return &Generator{
		rnd:       rand.New(source), //#nosec
		baselines: baselines,
	}
}

// Generate returns one value per baseline, in baseline order. Calls do not
// depend on each other apart from consuming the random stream.
func (g *Generator) Generate() []Metric {
	g.lock.Lock()
	defer g.lock.Unlock()

	res := make([]Metric, 0, len(g.baselines))
	for _, b := range g.baselines {
		value := Vary(g.rnd, b.Value, b.Variation)
		change := b.Change * (1 + variation(g.rnd, b.ChangeVariation))
		res = append(res, Metric{
			Title:         b.Title,
			Value:         FormatValue(b.Title, value),
			RawValue:      value,
			Change:        FormatChange(change),
			ChangePercent: change,
			Trend:         trendOf(change),
		})
	}
	return res
}

// Vary perturbs baseline by a uniform factor in [-pct%, +pct%] and never
// returns a negative number.
func Vary(rnd *rand.Rand, baseline, pct float64) float64 {
	value := baseline * (1 + variation(rnd, pct))
	if value < 0 {
		return 0
	}
	return value
}

func variation(rnd *rand.Rand, pct float64) float64 {
	return (rnd.Float64()*2 - 1) * pct / 100
}
