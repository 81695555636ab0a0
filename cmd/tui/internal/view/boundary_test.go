package view

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragile panics on the key "x" or while rendering once broken.
type fragile struct {
	broken bool
	closed *int
}

func (f fragile) Title() string     { return "Fragile" }
func (f fragile) ShortHelp() string { return "x: explode" }
func (f fragile) Init() tea.Cmd     { return nil }
func (f fragile) Close()            { *f.closed++ }

func (f fragile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "x":
			panic("boom")
		case "v":
			f.broken = true
		}
	}

	return f, nil
}

func (f fragile) View() string {
	if f.broken {
		panic("render failed")
	}

	return "ok"
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoundary_RecoversUpdatePanic(t *testing.T) {
	closed, builds := 0, 0
	b := NewBoundary("Fragile", func() View {
		builds++
		return fragile{closed: &closed}
	}, nil)

	assert.Equal(t, "ok", b.View())

	b.Update(key("x"))
	require.EqualError(t, b.Failed(), "boom")
	assert.Contains(t, b.View(), "Fragile crashed")
	assert.NotContains(t, b.View(), "clear saved data")

	b.Update(key("r"))
	assert.NoError(t, b.Failed())
	assert.Equal(t, "ok", b.View())
	assert.Equal(t, 2, builds)
	assert.Equal(t, 1, closed)
}

func TestBoundary_RecoversRenderPanic(t *testing.T) {
	closed := 0
	b := NewBoundary("Fragile", func() View { return fragile{closed: &closed} }, nil)

	b.Update(key("v"))
	assert.Contains(t, b.View(), "render failed")
	assert.Error(t, b.Failed())
}

func TestBoundary_Purge(t *testing.T) {
	closed, purges := 0, 0
	b := NewBoundary("Helios", func() View { return fragile{closed: &closed} }, func(context.Context) error {
		purges++
		return nil
	})

	b.Update(key("x"))
	assert.Contains(t, b.View(), "clear saved data")

	_, cmd := b.Update(key("p"))
	require.NotNil(t, cmd)

	b.Update(cmd())
	assert.Equal(t, 1, purges)
	assert.NoError(t, b.Failed())
}

func TestBoundary_PurgeFailureStaysOnFallback(t *testing.T) {
	closed := 0
	b := NewBoundary("Helios", func() View { return fragile{closed: &closed} }, func(context.Context) error {
		return errors.New("locked")
	})

	b.Update(key("x"))
	_, cmd := b.Update(key("p"))
	b.Update(cmd())

	assert.Error(t, b.Failed())
	assert.Contains(t, b.View(), "Could not clear saved data: locked")
}

func TestBoundary_FactoryPanic(t *testing.T) {
	b := NewBoundary("Broken", func() View { panic("no data") }, nil)

	assert.EqualError(t, b.Failed(), "no data")
	assert.Equal(t, "Broken", b.Title())
	assert.Nil(t, b.Init())
	assert.Contains(t, b.View(), "Broken crashed")
}

func TestBoundary_EscFromFallback(t *testing.T) {
	closed := 0
	b := NewBoundary("Fragile", func() View { return fragile{closed: &closed} }, nil)

	b.Update(key("x"))

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}
