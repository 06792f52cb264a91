package visibility_test

import (
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/iamadya/admybrand-insights-dashboard/internal/visibility"
)

type recordingListener struct {
	lock   sync.Mutex
	states []visibility.State
}

func (r *recordingListener) OnVisibilityChange(state visibility.State) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.states = append(r.states, state)
}

func (r *recordingListener) States() []visibility.State {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]visibility.State(nil), r.states...)
}

var _ = Describe("FileSource", func() {

	var (
		datadir   string
		pauseFile string
		listener  *recordingListener
	)

	BeforeEach(func() {
		datadir = GinkgoT().TempDir()
		pauseFile = filepath.Join(datadir, "paused")
		listener = &recordingListener{}
	})

	It("starts visible when the pause file does not exist", func() {
		// given
		source := visibility.NewFileSource(pauseFile)

		// when
		err := source.Start()

		// then
		Expect(err).NotTo(HaveOccurred())
		defer source.Close()
		Expect(source.Current()).To(Equal(visibility.Visible))
	})

	It("starts hidden when the pause file exists", func() {
		// given
		Expect(os.WriteFile(pauseFile, nil, 0600)).To(Succeed())
		source := visibility.NewFileSource(pauseFile)

		// when
		err := source.Start()

		// then
		Expect(err).NotTo(HaveOccurred())
		defer source.Close()
		Expect(source.Current()).To(Equal(visibility.Hidden))
	})

	It("follows the pause file", func() {
		// given
		source := visibility.NewFileSource(pauseFile)
		source.Subscribe(listener)
		Expect(source.Start()).To(Succeed())
		defer source.Close()

		// when
		Expect(os.WriteFile(pauseFile, nil, 0600)).To(Succeed())

		// then
		Eventually(source.Current).Should(Equal(visibility.Hidden))
		Eventually(listener.States).Should(Equal([]visibility.State{visibility.Hidden}))

		// when
		Expect(os.Remove(pauseFile)).To(Succeed())

		// then
		Eventually(source.Current).Should(Equal(visibility.Visible))
		Eventually(listener.States).Should(Equal([]visibility.State{visibility.Hidden, visibility.Visible}))
	})

	It("ignores other files in the directory", func() {
		// given
		source := visibility.NewFileSource(pauseFile)
		source.Subscribe(listener)
		Expect(source.Start()).To(Succeed())
		defer source.Close()

		// when
		Expect(os.WriteFile(filepath.Join(datadir, "other"), nil, 0600)).To(Succeed())

		// then
		Consistently(listener.States, "200ms").Should(BeEmpty())
	})

	It("fails when the directory does not exist", func() {
		// given
		source := visibility.NewFileSource(filepath.Join(datadir, "missing", "paused"))

		// when
		err := source.Start()

		// then
		Expect(err).To(HaveOccurred())
	})

	It("can be closed without being started", func() {
		Expect(visibility.NewFileSource(pauseFile).Close()).To(Succeed())
	})
})
