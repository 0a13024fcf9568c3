package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leadtrack_backend/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (e pingEvent) EventName() string { return "test.ping" }

func TestPublishSyncDispatchesToAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var calls int
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, event Event) error {
		calls++
		return nil
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, event Event) error {
		calls++
		return nil
	}))

	if err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

func TestPublishSyncCollectsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	boom := errors.New("boom")
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, event Event) error {
		return boom
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error to surface, got %v", err)
	}
}

func TestPublishSkipsUnrelatedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var mu sync.Mutex
	called := false
	done := make(chan struct{})
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, event Event) error {
		mu.Lock()
		called = true
		mu.Unlock()
		close(done)
		return nil
	}))

	bus.Publish(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	<-done

	mu.Lock()
	defer mu.Unlock()
	if !called {
		t.Fatal("expected subscribed handler to run")
	}

	// No handler registered for this name; must not panic or block.
	bus.PublishSync(context.Background(), otherEvent{BaseEvent: NewBaseEvent()})
}

type otherEvent struct {
	BaseEvent
}

func (e otherEvent) EventName() string { return "test.other" }
