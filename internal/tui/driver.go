package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stagedoor-ui/stagedoor/internal/host"
	"github.com/stagedoor-ui/stagedoor/internal/platform"
)

// viewer is implemented by demo controllers that can render themselves and
// consume key presses. Both methods run on the stage loop.
type viewer interface {
	View(st styleSet, width int) string
	Key(msg tea.KeyMsg)
}

// Driver bridges the stage loop and the bubbletea program. Frames are
// rendered on the loop goroutine, where screen state lives, and pushed to
// the program as messages.
type Driver struct {
	stage  *platform.Stage
	styles styleSet
	title  string
	help   bool

	mu    sync.Mutex
	send  func(tea.Msg)
	width int
}

func newDriver(stage *platform.Stage, styles styleSet, title string, help bool) *Driver {
	return &Driver{
		stage:  stage,
		styles: styles,
		title:  title,
		help:   help,
		width:  80,
	}
}

// attach connects the running program so frames have somewhere to go.
func (d *Driver) attach(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	d.mu.Unlock()
}

// Send forwards a message to the program, if one is attached.
func (d *Driver) Send(msg tea.Msg) {
	d.mu.Lock()
	send := d.send
	d.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// SetWidth records the terminal width for subsequent frames.
func (d *Driver) SetWidth(w int) {
	d.mu.Lock()
	d.width = w
	d.mu.Unlock()
}

// Key posts a key press to the top screen and renders the next frame.
func (d *Driver) Key(msg tea.KeyMsg) {
	_ = d.stage.Do(func() {
		if v, ok := d.topViewer(); ok {
			v.Key(msg)
		}
		d.refreshOnLoop()
	})
}

// Refresh schedules a frame render on the loop.
func (d *Driver) Refresh() {
	_ = d.stage.Do(d.refreshOnLoop)
}

// RecreateAll destroys and rebuilds every screen object, as a configuration
// change would. Retained controllers keep their state.
func (d *Driver) RecreateAll() {
	_ = d.stage.RecreateAll()
	d.Refresh()
}

// topViewer returns the top screen's controller as a viewer. Loop only.
func (d *Driver) topViewer() (viewer, bool) {
	h, ok := d.stage.TopScreen().(*host.Host)
	if !ok {
		return nil, false
	}
	v, ok := h.Controller().(viewer)
	return v, ok
}

// refreshOnLoop renders the current frame and sends it to the program.
// Loop only.
func (d *Driver) refreshOnLoop() {
	d.mu.Lock()
	width := d.width
	d.mu.Unlock()

	body := ""
	if v, ok := d.topViewer(); ok {
		body = v.View(d.styles, width)
	}

	frame := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.Title.Render(d.title),
		d.styles.Box.Width(min(width-2, 72)).Render(body),
	)
	if d.help {
		frame = lipgloss.JoinVertical(lipgloss.Left, frame,
			d.styles.Help.Render("ctrl+r recreate screens - ctrl+c quit"))
	}
	d.Send(frameMsg(frame))
}
