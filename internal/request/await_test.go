package request

import (
	"context"
	"testing"
	"time"
)

func TestAwait_WaitReturnsResolvedResult(t *testing.T) {
	a := NewAwait()

	go a.Resolve(Result{Status: StatusOK, Extras: Bundle{"value": 42}})

	res, err := a.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Status != StatusOK {
		t.Errorf("Expected StatusOK, got %v", res.Status)
	}
	if res.Extras.Int("value") != 42 {
		t.Errorf("Expected value 42, got %d", res.Extras.Int("value"))
	}
}

func TestAwait_WaitHonorsContext(t *testing.T) {
	a := NewAwait()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Wait(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if a.Resolved() {
		t.Error("Cancelled wait must not resolve the awaitable")
	}
}

func TestAwait_ResolveTwicePanics(t *testing.T) {
	a := NewAwait()
	a.Resolve(Result{Status: StatusOK})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on second Resolve")
		}
	}()
	a.Resolve(Result{Status: StatusCancelled})
}

func TestAwait_DoneSignalsAllWaiters(t *testing.T) {
	a := NewAwait()

	const waiters = 4
	done := make(chan Result, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			res, _ := a.Wait(context.Background())
			done <- res
		}()
	}

	a.Resolve(Result{Status: StatusCancelled})

	for i := 0; i < waiters; i++ {
		select {
		case res := <-done:
			if res.Status != StatusCancelled {
				t.Errorf("Waiter %d: expected StatusCancelled, got %v", i, res.Status)
			}
		case <-time.After(time.Second):
			t.Fatalf("Waiter %d did not observe resolution", i)
		}
	}
}

func TestTicket_FlushResolvesAwait(t *testing.T) {
	tk := NewTicket(Code(1000), nil)

	if tk.Result().Status != StatusPending {
		t.Errorf("Expected new ticket to be pending, got %v", tk.Result().Status)
	}
	if tk.Await().Resolved() {
		t.Error("New ticket's awaitable should not be resolved")
	}

	tk.Complete(StatusOK, Bundle{"name": "gopher"})
	if tk.Await().Resolved() {
		t.Error("Complete alone must not resolve the awaitable")
	}

	tk.Flush()
	if !tk.Await().Resolved() {
		t.Error("Flush should resolve the awaitable")
	}
	res, err := tk.Await().Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Extras.String("name") != "gopher" {
		t.Errorf("Expected payload to survive flush, got %q", res.Extras.String("name"))
	}
}
