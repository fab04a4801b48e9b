package media_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/frahmantamala/employee-directory/internal/core/events"
	"github.com/frahmantamala/employee-directory/internal/media"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
	failOn  string
}

func (r *recordingRemover) Remove(relPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if relPath == r.failOn {
		return errors.New("permission denied")
	}
	r.removed = append(r.removed, relPath)
	return nil
}

func (r *recordingRemover) Removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed...)
}

var _ = Describe("Releaser", func() {
	var (
		remover  *recordingRemover
		releaser *media.Releaser
		logger   *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		remover = &recordingRemover{}
		releaser = media.NewReleaser(remover, media.ReleaserConfig{MaxWorkers: 2, JobQueueSize: 10}, logger)
	})

	AfterEach(func() {
		releaser.Shutdown()
	})

	It("releases queued files in the background", func() {
		Expect(releaser.Release("test", "a.jpg", "b.jpg", "")).To(Succeed())

		Eventually(remover.Removed).Should(ConsistOf("a.jpg", "b.jpg"))
	})

	It("keeps going when one file cannot be released", func() {
		remover.failOn = "bad.jpg"

		Expect(releaser.Release("test", "bad.jpg", "good.jpg")).To(Succeed())
		releaser.Wait()

		Expect(remover.Removed()).To(ConsistOf("good.jpg"))
	})

	It("releases the files named by directory events", func() {
		bus := events.NewEventBus(logger)
		releaser.Subscribe(bus)

		Expect(bus.Publish(context.Background(), events.NewEmployeeDeletedEvent(7, []string{"x.jpg", "y.jpg"}))).To(Succeed())
		Expect(bus.Publish(context.Background(), events.NewEmployeeImageDeletedEvent(7, 3, "z.jpg"))).To(Succeed())

		bus.Wait()
		Eventually(remover.Removed).Should(ConsistOf("x.jpg", "y.jpg", "z.jpg"))
	})

	It("drains the queue on shutdown and refuses new files afterwards", func() {
		Expect(releaser.Release("test", "1.jpg", "2.jpg", "3.jpg")).To(Succeed())

		releaser.Shutdown()

		Expect(remover.Removed()).To(HaveLen(3))
		Expect(releaser.Release("test", "4.jpg")).To(MatchError(media.ErrReleaserStopped))
	})
})
