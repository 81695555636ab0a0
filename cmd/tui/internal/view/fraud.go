package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/facade"
)

type FraudAnalyzer interface {
	Analyze(ctx context.Context, text string) (facade.Verdict, error)
}

type fraudResultMsg struct {
	verdict facade.Verdict
	err     error
}

type FraudModel struct {
	CommonModel
	analyzer FraudAnalyzer

	input   textarea.Model
	spinner spinner.Model
	busy    bool
	verdict *facade.Verdict
	err     error
}

func NewFraudModel(analyzer FraudAnalyzer) FraudModel {
	ta := textarea.New()
	ta.Placeholder = "Paste a message, email or SMS you are unsure about..."
	ta.SetWidth(70)
	ta.SetHeight(6)
	ta.CharLimit = 2000

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return FraudModel{analyzer: analyzer, input: ta, spinner: s}
}

func (m FraudModel) Title() string     { return "Scam Check" }
func (m FraudModel) ShortHelp() string { return "ctrl+s: analyze | Esc: back" }

func (m FraudModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m FraudModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.input.SetWidth(max(msg.Width-6, 20))

		return m, nil

	case fraudResultMsg:
		m.busy = false
		m.err = msg.err
		m.verdict = nil

		if msg.err == nil {
			m.verdict = &msg.verdict
		}

		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "ctrl+s":
			text := m.input.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}

			m.busy = true
			analyzer := m.analyzer

			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				ctx, cancel := CallCtx()
				defer cancel()

				v, err := analyzer.Analyze(ctx, text)

				return fraudResultMsg{verdict: v, err: err}
			})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m FraudModel) View() string {
	parts := []string{m.input.View(), ""}

	switch {
	case m.busy:
		parts = append(parts, fmt.Sprintf("%s Checking...", m.spinner.View()))
	case m.err != nil:
		parts = append(parts, errorLine(m.err.Error()))
	case m.verdict != nil && m.verdict.IsScam:
		parts = append(parts, errStyle.Bold(true).Render("Likely a scam"), m.verdict.Reason)
	case m.verdict != nil:
		parts = append(parts, okStyle.Bold(true).Render("No scam indicators found"), m.verdict.Reason)
	}

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
