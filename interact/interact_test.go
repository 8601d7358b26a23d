package interact

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-mirror-room/room"
	"github.com/jdginn/go-mirror-room/room/config"
	"github.com/jdginn/go-mirror-room/room/session"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	c := config.Default()
	c.Output.ImageSize = 64
	sim, err := session.NewSimulation(c)
	require.NoError(t, err)
	t.Cleanup(sim.Close)
	return newModel(sim, filepath.Join(t.TempDir(), "trace.png"))
}

func press(t *testing.T, m model, msgs ...tea.KeyMsg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
		require.NoError(t, m.err)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)
	assert.Len(t, m.list.Items(), 21)
	assert.FileExists(t, m.output)
	assert.Equal(t, "north", m.list.Items()[0].(item).Title())
}

func TestSliderKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.sim.Bounces)
	assert.Len(t, m.list.Items(), 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.sim.Bounces, "bounces never drop below one")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Len(t, m.list.Items(), 9)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 3, m.sim.RayCount)

	m = press(t, m, runes("]"), runes("]"), runes("["))
	assert.Equal(t, 4, m.sim.FanCount)
	assert.Len(t, m.sim.Traces, 12)
}

func TestDragKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("d"), runes("w"))
	assert.True(t, m.sim.Dragging())
	assert.Empty(t, m.list.Items())
	assert.Equal(t, room.V(DragStep, 1, DragStep), m.sim.Source.Position)
	assert.Contains(t, m.View(), "dragging")

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.sim.Dragging())
	assert.Len(t, m.list.Items(), 21)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDragKeysStopAtWall(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < 30; i++ {
		m = press(t, m, runes("d"))
	}
	assert.InDelta(t, 9.0, m.sim.Source.Position.X, 1e-9)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Len(t, m.list.Items(), 21)
}
