// Package internal contains integration tests that verify the packages work
// together correctly: the stage driver, the host/controller pair, the
// pending-operation registry, and the deferred-initializer hook.
package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stagedoor-ui/stagedoor/internal/event"
	"github.com/stagedoor-ui/stagedoor/internal/hook"
	"github.com/stagedoor-ui/stagedoor/internal/host"
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/platform"
	"github.com/stagedoor-ui/stagedoor/internal/request"
	"github.com/stagedoor-ui/stagedoor/internal/testutil"
)

type callerController struct {
	host.Controller
}

type formController struct {
	host.Controller
	seeded string
}

// TestStartForResultSurvivesRecreationChurn exercises the full round trip
// under recreation churn: a launch with a deferred initializer, repeated
// destruction and recreation of every screen object, and a result that must
// still arrive exactly once, after the caller has resumed.
func TestStartForResultSurvivesRecreationChurn(t *testing.T) {
	bus := event.NewBus()
	codes := request.NewAllocator()
	hk := hook.New(bus, logging.NopLogger())
	stage := platform.New(platform.Config{Bus: bus, Logger: logging.NopLogger()})

	var callers []*callerController
	var forms []*formController

	callerCfg := host.Config{
		Key:   "caller",
		Codes: codes,
		Hook:  hk,
		New: func() any {
			c := &callerController{}
			callers = append(callers, c)
			return c
		},
	}
	formCfg := host.Config{
		Key:   "form",
		Codes: codes,
		Hook:  hk,
		New: func() any {
			c := &formController{}
			forms = append(forms, c)
			return c
		},
	}
	if err := stage.RegisterKind("caller", host.Factory(callerCfg)); err != nil {
		t.Fatalf("RegisterKind returned error: %v", err)
	}
	if err := stage.RegisterKind("form", host.Factory(formCfg)); err != nil {
		t.Fatalf("RegisterKind returned error: %v", err)
	}

	testutil.RunStage(t, stage)
	if err := stage.Start(platform.Intent{Kind: "caller"}); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	testutil.Step(t, stage, func() {})

	// Launch the form with a deferred initializer.
	initRuns := 0
	var aw *request.Await
	testutil.Step(t, stage, func() {
		caller := callers[0]
		var err error
		aw, err = caller.StartHostForResult(platform.Intent{Kind: "form"}, func(ctrl any) {
			initRuns++
			ctrl.(*formController).seeded = "from initializer"
		})
		if err != nil {
			t.Errorf("StartHostForResult returned error: %v", err)
		}
	})

	// Configuration-change churn: every screen object is destroyed and
	// rebuilt, twice, while the operation is outstanding.
	for i := 0; i < 2; i++ {
		if err := stage.RecreateAll(); err != nil {
			t.Fatalf("RecreateAll returned error: %v", err)
		}
		testutil.Step(t, stage, func() {})
	}

	if len(callers) != 1 || len(forms) != 1 {
		t.Fatalf("Expected controllers to survive churn, got %d callers and %d forms",
			len(callers), len(forms))
	}
	if forms[0].seeded != "from initializer" {
		t.Errorf("Expected the initializer to seed the form, got %q", forms[0].seeded)
	}
	if initRuns != 1 {
		t.Errorf("Expected the initializer to run once, ran %d times", initRuns)
	}
	if hk.Pending() != 0 || hk.Registered() {
		t.Error("Expected the hook to be idle after the initializer ran")
	}

	// The form finishes; the caller's awaitable resolves with its result
	// once the caller is back on top and resumed.
	testutil.Step(t, stage, func() {
		if err := forms[0].Finish(request.StatusOK, request.Bundle{"value": 42}); err != nil {
			t.Errorf("Finish returned error: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := aw.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Status != request.StatusOK {
		t.Errorf("Expected ok status, got %s", res.Status)
	}
	if res.Extras.Int("value") != 42 {
		t.Errorf("Expected extras to round-trip, got %v", res.Extras)
	}
	if callers[0].Registry().Outstanding() != 0 {
		t.Errorf("Expected no outstanding tickets, got %d", callers[0].Registry().Outstanding())
	}
}
