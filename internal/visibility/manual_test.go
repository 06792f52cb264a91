package visibility_test

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/iamadya/admybrand-insights-dashboard/internal/visibility"
)

var _ = Describe("Manual", func() {

	var (
		mockCtrl *gomock.Controller
		source   *visibility.Manual
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = visibility.NewManual(visibility.Visible)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("notifies every listener of a change", func() {
		// given
		first := visibility.NewMockListener(mockCtrl)
		second := visibility.NewMockListener(mockCtrl)
		source.Subscribe(first)
		source.Subscribe(second)

		first.EXPECT().OnVisibilityChange(visibility.Hidden).Times(1)
		second.EXPECT().OnVisibilityChange(visibility.Hidden).Times(1)

		// when
		source.Set(visibility.Hidden)

		// then
		Expect(source.Current()).To(Equal(visibility.Hidden))
	})

	It("does not repeat the current state", func() {
		// given
		listener := visibility.NewMockListener(mockCtrl)
		source.Subscribe(listener)
		listener.EXPECT().OnVisibilityChange(gomock.Any()).Times(0)

		// when
		source.Set(visibility.Visible)

		// then
		Expect(source.Current()).To(Equal(visibility.Visible))
	})

	It("stops notifying after unsubscribe", func() {
		// given
		listener := visibility.NewMockListener(mockCtrl)
		other := visibility.NewMockListener(mockCtrl)
		source.Subscribe(listener)
		source.Subscribe(other)
		listener.EXPECT().OnVisibilityChange(gomock.Any()).Times(0)
		other.EXPECT().OnVisibilityChange(visibility.Hidden).Times(1)

		// when
		source.Unsubscribe(listener)
		source.Set(visibility.Hidden)

		// then mock expectations are verified on Finish
	})

	DescribeTable("ParseState", func(input string, expected visibility.State, fails bool) {
		state, err := visibility.ParseState(input)
		if fails {
			Expect(err).To(HaveOccurred())
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(expected))
	},
		Entry("visible", "visible", visibility.Visible, false),
		Entry("hidden uppercase", "HIDDEN", visibility.Hidden, false),
		Entry("unknown", "prerender", visibility.State(""), true),
	)
})
