package metrics_test

import (
	"math/rand"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
)

var _ = Describe("Generator", func() {

	var generator *metrics.Generator

	BeforeEach(func() {
		generator = metrics.NewGenerator(rand.NewSource(GinkgoRandomSeed()))
	})

	It("returns the four overview metrics in order", func() {
		// when
		res := generator.Generate()

		// then
		Expect(res).To(HaveLen(4))
		for i, title := range metrics.Titles {
			Expect(res[i].Title).To(Equal(title))
		}
	})

	It("keeps values non-negative and trend in line with the change", func() {
		for i := 0; i < 1000; i++ {
			for _, m := range generator.Generate() {
				Expect(m.RawValue).To(BeNumerically(">=", 0))
				if m.ChangePercent >= 0 {
					Expect(m.Trend).To(Equal(metrics.TrendUp))
					Expect(m.Change).To(HavePrefix("+"))
				} else {
					Expect(m.Trend).To(Equal(metrics.TrendDown))
					Expect(m.Change).To(HavePrefix("-"))
				}
				Expect(m.Change).To(HaveSuffix(" from last month"))
				Expect(m.Value).To(Equal(metrics.FormatValue(m.Title, m.RawValue)))
			}
		}
	})

	It("keeps every value within its variation band", func() {
		for i := 0; i < 10000; i++ {
			res := generator.Generate()
			for j, b := range metrics.DefaultBaselines {
				Expect(res[j].RawValue).To(BeNumerically(">=", b.Value*(1-b.Variation/100)))
				Expect(res[j].RawValue).To(BeNumerically("<=", b.Value*(1+b.Variation/100)))

				low, high := b.Change*(1-b.ChangeVariation/100), b.Change*(1+b.ChangeVariation/100)
				Expect(res[j].ChangePercent).To(BeNumerically(">=", low))
				Expect(res[j].ChangePercent).To(BeNumerically("<=", high))
			}
		}
	})

	It("keeps Revenue within [52604.07, 55857.93]", func() {
		for i := 0; i < 10000; i++ {
			revenue := generator.Generate()[0]
			Expect(revenue.Title).To(Equal(metrics.Revenue))
			Expect(revenue.RawValue).To(BeNumerically(">=", 52604.07))
			Expect(revenue.RawValue).To(BeNumerically("<=", 55857.93))
			Expect(revenue.Value).To(HavePrefix("$"))
		}
	})

	It("is reproducible for a fixed seed", func() {
		// given
		first := metrics.NewGenerator(rand.NewSource(7))
		second := metrics.NewGenerator(rand.NewSource(7))

		// then
		for i := 0; i < 10; i++ {
			Expect(first.Generate()).To(Equal(second.Generate()))
		}
	})

	It("can be used concurrently", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				for j := 0; j < 100; j++ {
					Expect(generator.Generate()).To(HaveLen(4))
				}
			}()
		}
		wg.Wait()
	})

	Context("Vary", func() {
		It("never goes below zero", func() {
			// given
			rnd := rand.New(rand.NewSource(1))

			// then
			for i := 0; i < 1000; i++ {
				Expect(metrics.Vary(rnd, 10, 150)).To(BeNumerically(">=", 0))
			}
		})

		It("returns the baseline when there is no variation", func() {
			rnd := rand.New(rand.NewSource(1))
			Expect(metrics.Vary(rnd, 2847, 0)).To(Equal(2847.0))
		})
	})

	Context("custom baselines", func() {
		It("keeps a negative change as a down trend", func() {
			// given
			generator = metrics.NewGeneratorWithBaselines(rand.NewSource(3), []metrics.Baseline{
				{Title: metrics.Users, Value: 100, Variation: 0, Change: -3.1, ChangeVariation: 0},
			})

			// when
			res := generator.Generate()

			// then
			Expect(res).To(HaveLen(1))
			Expect(res[0].Trend).To(Equal(metrics.TrendDown))
			Expect(res[0].Change).To(Equal("-3.1% from last month"))
			Expect(strings.Contains(res[0].Value, ".")).To(BeFalse())
		})
	})
})
