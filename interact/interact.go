package interact

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-mirror-room/room"
	"github.com/jdginn/go-mirror-room/room/session"
)

// DragStep is how far one w/a/s/d press moves the source.
const DragStep = 0.5

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DABF7")).Bold(true)
	dragStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF922B"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E03131"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#868E96"))
)

type item struct {
	path room.ReflectionPath
}

func (i item) Title() string {
	return i.path.ID
}

func (i item) Description() string {
	return fmt.Sprintf("%d bounces, image at (%.2f, %.2f)", i.path.BounceCount, i.path.Position.X, i.path.Position.Z)
}

func (i item) FilterValue() string {
	return i.Title()
}

type model struct {
	list   list.Model
	sim    *session.Simulation
	output string
	err    error
}

func newModel(sim *session.Simulation, output string) model {
	m := model{
		list:   list.New(nil, list.NewDefaultDelegate(), 0, 0),
		sim:    sim,
		output: output,
	}
	m.list.Title = "Reflections"
	m.refresh()
	return m
}

// refresh reloads the path list and re-renders the image after a change.
func (m *model) refresh() {
	items := make([]list.Item, len(m.sim.Paths))
	for i, p := range m.sim.Paths {
		items[i] = item{path: p}
	}
	m.list.SetItems(items)
	if m.output != "" {
		if err := m.sim.RenderTrace(m.output); err != nil {
			m.err = err
		}
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// handleKey applies the slider and drag keys. It reports false for keys it does not own.
func (m *model) handleKey(key string) bool {
	var err error
	switch key {
	case "up":
		err = m.sim.SetBounces(m.sim.Bounces + 1)
	case "down":
		err = m.sim.SetBounces(m.sim.Bounces - 1)
	case "right":
		err = m.sim.SetRayCount(m.sim.RayCount + 1)
	case "left":
		err = m.sim.SetRayCount(m.sim.RayCount - 1)
	case "]":
		err = m.sim.SetFanCount(m.sim.FanCount + 1)
	case "[":
		err = m.sim.SetFanCount(m.sim.FanCount - 1)
	case "w":
		err = m.sim.Drag(room.V(0, 0, DragStep))
	case "s":
		err = m.sim.Drag(room.V(0, 0, -DragStep))
	case "a":
		err = m.sim.Drag(room.V(-DragStep, 0, 0))
	case "d":
		err = m.sim.Drag(room.V(DragStep, 0, 0))
	case " ", "space":
		err = m.sim.Release()
	default:
		return false
	}
	m.err = err
	m.refresh()
	return true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.handleKey(msg.String()) {
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) status() string {
	s := statusStyle.Render(fmt.Sprintf("bounces %d  rays %d  fan %d  source (%.1f, %.1f)",
		m.sim.Bounces, m.sim.RayCount, m.sim.FanCount, m.sim.Source.Position.X, m.sim.Source.Position.Z))
	if m.sim.Dragging() {
		s += "  " + dragStyle.Render("dragging, space to release")
	}
	if m.err != nil {
		s += "\n" + errorStyle.Render(m.err.Error())
	}
	return s
}

func (m model) View() string {
	help := helpStyle.Render("↑/↓ bounces  ←/→ rays  [/] fan  w/a/s/d move  space release  ctrl+c quit")
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.status(), help, m.list.View()))
}

// Interact runs the terminal UI until the user quits, re-rendering output after every change.
func Interact(sim *session.Simulation, output string) error {
	p := tea.NewProgram(newModel(sim, output), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
