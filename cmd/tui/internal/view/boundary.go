package view

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PurgeFunc wipes durable client state.
type PurgeFunc func(ctx context.Context) error

// Boundary isolates a screen: a panic while updating or rendering the child
// replaces it with a fallback offering a retry. The top-level boundary also
// offers wiping durable storage, for when persisted state is what crashes.
type Boundary struct {
	name    string
	factory func() View
	purge   PurgeFunc

	child  View
	err    error
	status string
}

// NewBoundary builds the child from factory. purge may be nil.
func NewBoundary(name string, factory func() View, purge PurgeFunc) *Boundary {
	b := &Boundary{name: name, factory: factory, purge: purge}
	b.capture(func() { b.child = factory() })

	return b
}

func (b *Boundary) Title() string {
	if b.err != nil || b.child == nil {
		return b.name
	}

	return b.child.Title()
}

func (b *Boundary) ShortHelp() string {
	if b.err != nil {
		if b.purge != nil {
			return "r: retry | p: clear saved data | Esc: back"
		}

		return "r: retry | Esc: back"
	}

	return b.child.ShortHelp()
}

// Failed reports the recovered panic, if any.
func (b *Boundary) Failed() error {
	return b.err
}

func (b *Boundary) Init() tea.Cmd {
	if b.err != nil {
		return nil
	}

	var cmd tea.Cmd
	b.capture(func() { cmd = b.child.Init() })

	return cmd
}

type purgedMsg struct {
	err error
}

func (b *Boundary) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.err != nil {
		return b.updateFailed(msg)
	}

	var cmd tea.Cmd

	b.capture(func() {
		next, c := b.child.Update(msg)
		b.child = next.(View)
		cmd = c
	})

	return b, cmd
}

func (b *Boundary) updateFailed(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case purgedMsg:
		if msg.err != nil {
			b.status = fmt.Sprintf("Could not clear saved data: %v", msg.err)
			return b, nil
		}

		return b, b.retry()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return b, b.retry()
		case "p":
			if b.purge == nil {
				return b, nil
			}

			purge := b.purge

			return b, func() tea.Msg {
				ctx, cancel := CallCtx()
				defer cancel()

				return purgedMsg{err: purge(ctx)}
			}
		case "esc":
			return b, Back
		}
	}

	return b, nil
}

func (b *Boundary) retry() tea.Cmd {
	b.Close()
	b.err = nil
	b.status = ""
	b.capture(func() { b.child = b.factory() })

	return b.Init()
}

func (b *Boundary) View() string {
	if b.err == nil {
		var out string

		b.capture(func() { out = b.child.View() })

		if b.err == nil {
			return out
		}
	}

	lines := []string{
		errStyle.Bold(true).Render(b.name + " crashed"),
		"",
		faintStyle.Render(b.err.Error()),
		"",
		"Press r to try again.",
	}

	if b.purge != nil {
		lines = append(lines, "Press p to clear saved data and start over.")
	}

	if b.status != "" {
		lines = append(lines, "", warnStyle.Render(b.status))
	}

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Close releases the child's loaders.
func (b *Boundary) Close() {
	if c, ok := b.child.(Closer); ok {
		c.Close()
	}
}

func (b *Boundary) capture(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.err = fmt.Errorf("%v", r)
			slog.Error("screen panicked", "screen", b.name, "panic", r)
		}
	}()

	fn()
}
