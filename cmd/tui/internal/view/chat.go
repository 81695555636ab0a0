package view

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/chat"
)

type chatLoadedMsg struct{}

type chatSentMsg struct {
	err error
}

type ChatModel struct {
	CommonModel
	thread *chat.Thread

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
}

func NewChatModel(client chat.Client) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about your portfolio, risk or spending..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ChatModel{
		thread:   chat.NewThread(client),
		input:    ti,
		viewport: viewport.New(80, 18),
		spinner:  sp,
	}
}

func (m ChatModel) Title() string     { return "Assistant" }
func (m ChatModel) ShortHelp() string { return "Enter: send | ctrl+x: clear history | Esc: back" }

func (m ChatModel) Init() tea.Cmd {
	thread := m.thread

	return tea.Batch(m.input.Focus(), m.spinner.Tick, func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		thread.Mount(ctx)

		return chatLoadedMsg{}
	})
}

func (m ChatModel) Close() { m.thread.Unmount() }

func (m ChatModel) busy() bool {
	st := m.thread.State()
	return st.IsLoading || st.IsSending
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-10, 5)
		m.input.Width = max(msg.Width-8, 20)
		m.syncViewport()

		return m, nil

	case chatLoadedMsg, chatSentMsg:
		m.syncViewport()
		return m, nil

	case spinner.TickMsg:
		m.syncViewport()

		if !m.busy() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "ctrl+x":
			return m, m.clearCmd()
		case "enter":
			content := m.input.Value()
			if strings.TrimSpace(content) == "" {
				return m, nil
			}

			m.input.Reset()

			return m, tea.Batch(m.spinner.Tick, m.sendCmd(content))
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ChatModel) sendCmd(content string) tea.Cmd {
	thread := m.thread

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		err := thread.Send(ctx, content)
		if errors.Is(err, chat.ErrSendInFlight) {
			err = nil
		}

		return chatSentMsg{err: err}
	}
}

func (m ChatModel) clearCmd() tea.Cmd {
	thread := m.thread

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		return chatSentMsg{err: thread.Clear(ctx)}
	}
}

func (m *ChatModel) syncViewport() {
	m.viewport.SetContent(renderMessages(m.thread.State().Messages, m.viewport.Width))
	m.viewport.GotoBottom()
}

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func renderMessages(msgs []chat.Message, width int) string {
	body := lipgloss.NewStyle().Width(max(width-2, 10))

	blocks := make([]string, 0, len(msgs))

	for _, msg := range msgs {
		who := assistantStyle.Render("Helios")
		if msg.Role == chat.RoleUser {
			who = userStyle.Render("You")
		}

		header := fmt.Sprintf("%s %s", who, faintStyle.Render(msg.Timestamp.Format("15:04")))
		if msg.IsPending() {
			header += faintStyle.Render(" sending...")
		}

		block := header + "\n" + body.Render(msg.Content)
		if msg.Rich != nil {
			block += "\n" + panelStyle.Render(renderRich(*msg.Rich))
		}

		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

func renderRich(rc chat.RichContent) string {
	switch rc.Kind {
	case chat.RichStats:
		lines := make([]string, 0, len(rc.Data))
		for _, k := range slices.Sorted(maps.Keys(rc.Data)) {
			lines = append(lines, fmt.Sprintf("%s: %v", k, rc.Data[k]))
		}

		return strings.Join(lines, "\n")

	case chat.RichChart:
		items, _ := rc.Data["items"].([]map[string]any)

		lines := make([]string, 0, len(items))
		for _, it := range items {
			pct, _ := it["percentage"].(int)
			lines = append(lines, fmt.Sprintf("%-10v %-8v %-6v %s %d%%",
				it["name"], it["current"], it["change"], strings.Repeat("█", pct/5), pct))
		}

		return strings.Join(lines, "\n")

	case chat.RichTable:
		columns, _ := rc.Data["columns"].([]string)
		rows, _ := rc.Data["rows"].([][]string)

		lines := []string{strings.Join(columns, " | ")}
		for _, row := range rows {
			lines = append(lines, strings.Join(row, " | "))
		}

		return strings.Join(lines, "\n")
	}

	return ""
}

func (m ChatModel) View() string {
	st := m.thread.State()

	parts := []string{m.viewport.View(), ""}

	if st.IsSending {
		parts = append(parts, faintStyle.Render(m.spinner.View()+" Helios is thinking..."))
	}

	if st.Err != "" {
		parts = append(parts, errorLine(st.Err))
	}

	parts = append(parts, m.input.View())

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
