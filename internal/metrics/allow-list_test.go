package metrics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/common/model"

	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
)

var _ = Describe("Allow lists", func() {
	commonInput := model.Vector{
		newSample(metrics.ValueMetricName, "Revenue"),
		newSample(metrics.ChangeMetricName, "Revenue"),
		newSample(metrics.ValueMetricName, "Users"),
		newSample(metrics.ValueMetricName, "Growth%"),
	}

	Context("Restrictive", func() {
		DescribeTable("should filter elements", func(allowedTitles []string, inputVector, expectedOutput model.Vector) {
			// given
			filter := metrics.NewRestrictiveAllowList(allowedTitles)

			// when
			filtered := filter.Filter(inputVector)

			// then
			Expect(filtered).To(ConsistOf(expectedOutput))
		},
			Entry("empty input", []string{"Revenue"}, model.Vector{}, model.Vector{}),
			Entry("all titles on the allow list - exactly", []string{"Revenue", "Users", "Growth%"}, commonInput, commonInput),
			Entry("all titles on the allow list - additional allowed", []string{"Revenue", "Users", "Conversions", "Growth%"}, commonInput, commonInput),
			Entry("some titles on the allow list",
				[]string{"Revenue"},
				commonInput,
				model.Vector{commonInput[0], commonInput[1]},
			),
			Entry("no titles on the allow list", []string{"Conversions"}, commonInput, model.Vector{}),
			Entry("no samples on empty allow list", []string{}, commonInput, model.Vector{}),
		)
	})

	Context("Permissive", func() {
		DescribeTable("should pass-through elements", func(inputVector model.Vector) {
			// given
			filter := metrics.PermissiveAllowList{}

			// when
			filtered := filter.Filter(inputVector)

			// then
			Expect(filtered).To(ConsistOf(inputVector))
		},
			Entry("empty input", model.Vector{}),
			Entry("non-empty input", commonInput))
	})

	Context("NewAllowList", func() {
		It("is permissive when no title is configured", func() {
			Expect(metrics.NewAllowList(nil)).To(BeAssignableToTypeOf(&metrics.PermissiveAllowList{}))
		})

		It("is restrictive otherwise", func() {
			filter := metrics.NewAllowList([]string{"Users"})
			Expect(filter.Filter(commonInput)).To(ConsistOf(commonInput[2]))
		})
	})
})

func newSample(name, title string) *model.Sample {
	return &model.Sample{Metric: model.Metric{
		model.MetricNameLabel: model.LabelValue(name),
		metrics.TitleLabel:    model.LabelValue(title),
	}}
}
