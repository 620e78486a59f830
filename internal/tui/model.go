package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a rendered frame from the stage loop
type frameMsg string

// stoppedMsg is sent when the stage loop has shut down
type stoppedMsg struct{}

// Model is the bubbletea model. It owns nothing but the last rendered frame;
// all application state lives in the retained controllers on the stage loop.
type Model struct {
	driver *Driver
	frame  string
}

// NewModel creates the demo model
func NewModel(driver *Driver) Model {
	return Model{driver: driver}
}

// Init requests the first frame
func (m Model) Init() tea.Cmd {
	m.driver.Refresh()
	return nil
}

// Update handles messages from the bubbletea runtime
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.driver.RecreateAll()
			return m, nil
		}
		m.driver.Key(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.driver.SetWidth(msg.Width)
		m.driver.Refresh()
		return m, nil

	case frameMsg:
		m.frame = string(msg)
		return m, nil

	case stoppedMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View renders the last frame received from the stage loop
func (m Model) View() string {
	return m.frame
}
