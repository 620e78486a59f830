package event

import (
	"sync"
	"testing"

	"github.com/stagedoor-ui/stagedoor/internal/request"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	sub := bus.Subscribe("screen.created", func(e Event) {
		called = true
	})

	if sub == nil {
		t.Fatal("Subscribe should return a subscription handle")
	}
	if bus.SubscriberCount() != 1 {
		t.Errorf("Expected 1 subscriber, got %d", bus.SubscriberCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe("screen.created", func(e Event) {
		received = e
	})

	bus.Publish(NewScreenCreatedEvent("scr-1", "menu", nil, request.Code(1000), true))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	created, ok := received.(ScreenCreatedEvent)
	if !ok {
		t.Fatalf("Expected ScreenCreatedEvent, got %T", received)
	}
	if created.ScreenID != "scr-1" {
		t.Errorf("Expected ScreenID scr-1, got %s", created.ScreenID)
	}
	if !created.HasRequestCode || created.RequestCode != 1000 {
		t.Errorf("Expected request code 1000, got %d (has=%v)", created.RequestCode, created.HasRequestCode)
	}
	if created.Timestamp().IsZero() {
		t.Error("Event timestamp should be set")
	}
}

func TestBus_PublishOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	createdCalls := 0
	destroyedCalls := 0
	bus.Subscribe("screen.created", func(e Event) { createdCalls++ })
	bus.Subscribe("screen.destroyed", func(e Event) { destroyedCalls++ })

	bus.Publish(NewScreenDestroyedEvent("scr-1", "menu", false))

	if createdCalls != 0 {
		t.Errorf("Expected 0 created calls, got %d", createdCalls)
	}
	if destroyedCalls != 1 {
		t.Errorf("Expected 1 destroyed call, got %d", destroyedCalls)
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) {
		order = append(order, "wildcard")
	})
	bus.Subscribe("stage.stopped", func(e Event) {
		order = append(order, "specific")
	})

	bus.Publish(NewStageStoppedEvent())

	if len(order) != 2 {
		t.Fatalf("Expected 2 handler calls, got %d", len(order))
	}
	if order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("Expected specific handler before wildcard, got %v", order)
	}
}

func TestSubscription_Cancel(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub := bus.Subscribe("screen.created", func(e Event) { calls++ })

	bus.Publish(NewScreenCreatedEvent("scr-1", "menu", nil, 0, false))
	sub.Cancel()
	bus.Publish(NewScreenCreatedEvent("scr-2", "menu", nil, 0, false))

	if calls != 1 {
		t.Errorf("Expected 1 call after cancel, got %d", calls)
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers after cancel, got %d", bus.SubscriberCount())
	}

	// Cancelling twice is a no-op.
	sub.Cancel()
}

func TestBus_HandlerPanicDoesNotBlockDelivery(t *testing.T) {
	bus := NewBus()

	secondCalled := false
	bus.Subscribe("screen.finished", func(e Event) {
		panic("handler bug")
	})
	bus.Subscribe("screen.finished", func(e Event) {
		secondCalled = true
	})

	bus.Publish(NewScreenFinishedEvent("scr-1", "editor", request.StatusOK))

	if !secondCalled {
		t.Error("Second handler should run despite first handler panicking")
	}
}

func TestBus_ConcurrentPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe("screen.created", func(e Event) {})
			sub.Cancel()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(NewScreenCreatedEvent("scr", "menu", nil, 0, false))
		}()
	}
	wg.Wait()
}
