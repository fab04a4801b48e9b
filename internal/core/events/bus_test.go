package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/frahmantamala/employee-directory/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("delivers to every subscriber of the event type", func() {
		var calls atomic.Int32
		for i := 0; i < 3; i++ {
			bus.Subscribe(events.EventTypeEmployeeDeleted, func(context.Context, events.Event) error {
				calls.Add(1)
				return nil
			})
		}
		bus.Subscribe(events.EventTypeEmployeeImageDeleted, func(context.Context, events.Event) error {
			calls.Add(100)
			return nil
		})

		Expect(bus.Publish(context.Background(), events.NewEmployeeDeletedEvent(1, nil))).To(Succeed())
		bus.Wait()
		Expect(calls.Load()).To(Equal(int32(3)))
	})

	It("hands handlers a context that outlives the publisher", func() {
		var handlerErr atomic.Value
		bus.Subscribe(events.EventTypeEmployeeDeleted, func(ctx context.Context, _ events.Event) error {
			handlerErr.Store(ctx.Err() == nil)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(bus.Publish(ctx, events.NewEmployeeDeletedEvent(1, nil))).To(Succeed())
		bus.Wait()
		Expect(handlerErr.Load()).To(BeTrue())
	})

	It("reports handler failures from PublishSync", func() {
		bus.Subscribe(events.EventTypeEmployeeImageDeleted, func(context.Context, events.Event) error {
			return errors.New("disk full")
		})

		err := bus.PublishSync(context.Background(), events.NewEmployeeImageDeletedEvent(1, 2, "a.jpg"))
		Expect(err).To(MatchError(ContainSubstring("disk full")))
	})

	It("ignores events nobody listens to", func() {
		Expect(bus.Publish(context.Background(), events.NewEmployeeDeletedEvent(1, nil))).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.NewEmployeeDeletedEvent(1, nil))).To(Succeed())
	})

	Describe("ReleasablePaths", func() {
		It("lists the files a deletion frees", func() {
			Expect(events.ReleasablePaths(events.NewEmployeeDeletedEvent(1, []string{"a.jpg", "b.jpg"}))).To(Equal([]string{"a.jpg", "b.jpg"}))
			Expect(events.ReleasablePaths(events.NewEmployeeImageDeletedEvent(1, 2, "c.jpg"))).To(Equal([]string{"c.jpg"}))
			Expect(events.ReleasablePaths(events.NewEmployeeImageDeletedEvent(1, 2, ""))).To(BeNil())
			Expect(events.ReleasablePaths(events.BaseEvent{Type: "other"})).To(BeNil())
		})
	})
})
