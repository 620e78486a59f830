package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stagedoor-ui/stagedoor/internal/host"
	"github.com/stagedoor-ui/stagedoor/internal/platform"
	"github.com/stagedoor-ui/stagedoor/internal/registry"
	"github.com/stagedoor-ui/stagedoor/internal/request"
	"github.com/stagedoor-ui/stagedoor/internal/util"
)

// Screen kinds registered by the demo.
const (
	KindMenu    = "demo.menu"
	KindEditor  = "demo.editor"
	KindConfirm = "demo.confirm"
)

// registerScreens wires the demo's host kinds into the stage.
func registerScreens(stage *platform.Stage, codes *request.Allocator, hk registry.InitializerHook, d *Driver) error {
	kinds := []struct {
		kind string
		make host.ControllerFactory
	}{
		{KindMenu, func() any { return &menuController{driver: d} }},
		{KindEditor, func() any { return &editorController{driver: d} }},
		{KindConfirm, func() any { return &confirmController{driver: d, prompt: "Are you sure?"} }},
	}
	for _, k := range kinds {
		cfg := host.Config{
			Key:   k.kind,
			Codes: codes,
			Hook:  hk,
			New:   k.make,
		}
		if err := stage.RegisterKind(k.kind, host.Factory(cfg)); err != nil {
			return err
		}
	}
	return nil
}

// menuController is the root screen: a note it owns, a list of actions, and
// the status of the last round trip. All fields are loop-confined.
type menuController struct {
	host.Controller
	driver *Driver

	cursor int
	note   string
	status string
}

var menuItems = []string{
	"Edit note",
	"Clear note",
	"Quit",
}

func (c *menuController) Key(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(menuItems)-1 {
			c.cursor++
		}
	case "enter":
		c.activate()
	}
}

func (c *menuController) activate() {
	switch c.cursor {
	case 0:
		c.editNote()
	case 1:
		c.clearNote()
	case 2:
		_ = c.Finish(request.StatusOK, nil)
	}
}

// editNote starts the editor for a result and waits for it on a separate
// goroutine. The await resolves only after the editor has finished and this
// screen has resumed.
func (c *menuController) editNote() {
	aw, err := c.StartForResult(platform.Intent{
		Kind:   KindEditor,
		Extras: request.Bundle{"text": c.note},
	})
	if err != nil {
		c.status = err.Error()
		return
	}
	c.status = "editing..."

	env := c.Env()
	go func() {
		res, err := aw.Wait(context.Background())
		if err != nil {
			return
		}
		_ = env.Post(func() {
			switch res.Status {
			case request.StatusOK:
				c.note = res.Extras.String("text")
				c.status = "note saved"
			case request.StatusCancelled:
				c.status = "edit cancelled"
			default:
				c.status = "edit ended: " + res.Status.String()
			}
			c.driver.refreshOnLoop()
		})
	}()
}

// clearNote starts the confirm screen with a deferred initializer; the
// initializer configures the destination controller even though that
// controller does not exist yet when the launch begins.
func (c *menuController) clearNote() {
	aw, err := c.StartHostForResult(platform.Intent{Kind: KindConfirm}, func(ctrl any) {
		ctrl.(*confirmController).prompt = "Clear the note?"
	})
	if err != nil {
		c.status = err.Error()
		return
	}
	c.status = "confirming..."

	env := c.Env()
	go func() {
		res, err := aw.Wait(context.Background())
		if err != nil {
			return
		}
		_ = env.Post(func() {
			if res.Status == request.StatusOK && res.Extras.Bool("confirmed") {
				c.note = ""
				c.status = "note cleared"
			} else {
				c.status = "kept the note"
			}
			c.driver.refreshOnLoop()
		})
	}()
}

func (c *menuController) View(st styleSet, width int) string {
	lines := make([]string, 0, len(menuItems)+3)
	note := c.note
	if note == "" {
		note = "(empty)"
	}
	lines = append(lines, util.TruncateANSI("note: "+note, width-8), "")
	for i, item := range menuItems {
		if i == c.cursor {
			lines = append(lines, st.Selected.Render(item))
		} else {
			lines = append(lines, st.Item.Render(item))
		}
	}
	if c.status != "" {
		lines = append(lines, st.Status.Render(c.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// editorController holds a text input. The input lives in the controller,
// not the screen object, so in-progress edits survive a recreation.
type editorController struct {
	host.Controller
	driver *Driver

	input textinput.Model
	ready bool
}

// OnAttached seeds the input from the launching intent, once. Later
// attachments after recreation keep whatever the user has typed.
func (c *editorController) OnAttached() {
	if c.ready {
		return
	}
	c.ready = true

	ti := textinput.New()
	ti.Placeholder = "type a note"
	ti.CharLimit = 120
	ti.SetValue(c.Env().Intent().Extras.String("text"))
	ti.Focus()
	c.input = ti
}

func (c *editorController) Key(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		_ = c.Finish(request.StatusCancelled, nil)
	case "enter":
		_ = c.Finish(request.StatusOK, request.Bundle{"text": c.input.Value()})
	default:
		c.input, _ = c.input.Update(msg)
	}
}

func (c *editorController) View(st styleSet, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"edit note",
		"",
		c.input.View(),
		st.Help.Render("enter save - esc cancel"),
	)
}

// confirmController asks a yes/no question. Its prompt is normally set by
// the caller's deferred initializer.
type confirmController struct {
	host.Controller
	driver *Driver

	prompt string
	yes    bool
}

func (c *confirmController) Key(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		c.yes = !c.yes
	case "y":
		_ = c.Finish(request.StatusOK, request.Bundle{"confirmed": true})
	case "n":
		_ = c.Finish(request.StatusOK, request.Bundle{"confirmed": false})
	case "enter":
		_ = c.Finish(request.StatusOK, request.Bundle{"confirmed": c.yes})
	case "esc":
		_ = c.Finish(request.StatusCancelled, nil)
	}
}

func (c *confirmController) View(st styleSet, width int) string {
	yes, no := "  yes  ", "  no  "
	if c.yes {
		yes = st.Selected.Render("[yes]")
	} else {
		no = st.Selected.Render("[no]")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		c.prompt,
		"",
		fmt.Sprintf("%s %s", yes, no),
		st.Help.Render("y/n or arrows+enter - esc cancel"),
	)
}
