package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/common/model"

	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
)

var _ = Describe("Snapshot", func() {

	var snapshot metrics.Snapshot

	BeforeEach(func() {
		snapshot = metrics.Snapshot{
			ID:        "abc",
			Timestamp: time.Unix(1700000000, 0),
			Metrics: []metrics.Metric{
				{Title: metrics.Revenue, RawValue: 54231, ChangePercent: 12.5, Trend: metrics.TrendUp},
				{Title: metrics.Growth, RawValue: 24.8, ChangePercent: -4.1, Trend: metrics.TrendDown},
			},
		}
	})

	It("copies without sharing metrics", func() {
		// when
		cp := snapshot.Copy()
		cp.Metrics[0].RawValue = 0

		// then
		Expect(snapshot.Metrics[0].RawValue).To(Equal(54231.0))
		Expect(cp.ID).To(Equal(snapshot.ID))
	})

	It("finds a metric by title", func() {
		m, ok := snapshot.Get(metrics.Growth)
		Expect(ok).To(BeTrue())
		Expect(m.RawValue).To(Equal(24.8))

		_, ok = snapshot.Get(metrics.Users)
		Expect(ok).To(BeFalse())
	})

	Context("Vector", func() {
		It("emits a value and a change sample per metric", func() {
			// when
			vector := snapshot.Vector()

			// then
			Expect(vector).To(HaveLen(4))
			Expect(vector[0].Metric[model.MetricNameLabel]).To(BeEquivalentTo(metrics.ValueMetricName))
			Expect(vector[0].Metric[metrics.TitleLabel]).To(BeEquivalentTo("Revenue"))
			Expect(float64(vector[0].Value)).To(Equal(54231.0))
			Expect(vector[3].Metric[model.MetricNameLabel]).To(BeEquivalentTo(metrics.ChangeMetricName))
			Expect(float64(vector[3].Value)).To(Equal(-4.1))
			Expect(vector[0].Timestamp.Time()).To(BeTemporally("==", snapshot.Timestamp))
		})

		It("is empty for an empty snapshot", func() {
			Expect(metrics.Snapshot{}.Vector()).To(BeEmpty())
		})
	})
})
