// Package testutil provides testing utilities for stagedoor tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stagedoor-ui/stagedoor/internal/platform"
)

// RunStage starts the stage loop on its own goroutine and registers a
// cleanup that stops it unless it already shut itself down.
func RunStage(t *testing.T, s *platform.Stage) {
	t.Helper()

	go func() {
		_ = s.Run()
	}()
	t.Cleanup(func() {
		select {
		case <-s.Done():
		default:
			s.Stop()
		}
	})
}

// Step executes fn on the stage loop and waits for it to complete. It fails
// the test if the stage refuses the op or the loop does not run it in time.
func Step(t *testing.T, s *platform.Stage, fn func()) {
	t.Helper()

	ran := make(chan struct{})
	if err := s.Do(func() {
		fn()
		close(ran)
	}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("stage loop did not execute posted op")
	}
}

// Eventually polls cond via Step until it returns true or the deadline
// passes.
func Eventually(t *testing.T, s *platform.Stage, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ok := false
		Step(t, s, func() { ok = cond() })
		if ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}
