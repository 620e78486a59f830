package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagedoor-ui/stagedoor/internal/config"
	"github.com/stagedoor-ui/stagedoor/internal/event"
	"github.com/stagedoor-ui/stagedoor/internal/platform"
	"github.com/stagedoor-ui/stagedoor/internal/registry"
	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// App wraps the Bubbletea program around a running stage
type App struct {
	stage   *platform.Stage
	driver  *Driver
	program *tea.Program
}

// New creates the demo application and registers its screen kinds. The stage
// must not be running yet.
func New(stage *platform.Stage, codes *request.Allocator, hk registry.InitializerHook, cfg *config.Config) (*App, error) {
	driver := newDriver(stage, newStyles(cfg.Demo.Accent), cfg.Demo.Title, cfg.Demo.ShowHelp)
	if err := registerScreens(stage, codes, hk, driver); err != nil {
		return nil, err
	}
	return &App{stage: stage, driver: driver}, nil
}

// Driver returns the render bridge, for callers that trigger refreshes or
// recreations from outside the program (the config watcher does).
func (a *App) Driver() *Driver {
	return a.driver
}

// Run starts the stage loop and the TUI, and blocks until either quits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		NewModel(a.driver),
		tea.WithAltScreen(),
	)
	a.driver.attach(a.program.Send)

	// When the stage stops (the root screen finished), quit the program.
	sub := a.stage.Bus().Subscribe("stage.stopped", func(event.Event) {
		a.driver.Send(stoppedMsg{})
	})
	defer sub.Cancel()

	// Repaint after every screen teardown; the frame for the uncovered
	// screen is rendered once the current transition completes.
	finSub := a.stage.Bus().Subscribe("screen.finished", func(event.Event) {
		a.driver.Refresh()
	})
	defer finSub.Cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	stageErr := make(chan error, 1)
	go func() {
		stageErr <- a.stage.Run()
	}()

	if err := a.stage.Start(platform.Intent{Kind: KindMenu}); err != nil {
		a.stage.Stop()
		<-stageErr
		return err
	}

	_, err := a.program.Run()

	// The user may have quit the program directly; make sure the stage
	// loop is down before returning.
	select {
	case <-a.stage.Done():
	default:
		a.stage.Stop()
	}
	<-stageErr
	return err
}
