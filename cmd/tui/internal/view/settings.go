package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/settings"
)

type settingsState int

const (
	settingsStateBrowse settingsState = iota
	settingsStateEdit
	settingsStateSaving
)

type settingsSavedMsg struct {
	err error
}

type SettingsModel struct {
	CommonModel
	store *settings.Store

	state   settingsState
	form    *huh.Form
	draft   *settings.Settings
	spinner spinner.Model
	status  string
}

func NewSettingsModel(store *settings.Store) SettingsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return SettingsModel{store: store, spinner: s}
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string {
	if m.state == settingsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | x: reset to defaults"
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func (m SettingsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("displayName").
				Title("Display name").
				Value(&m.draft.DisplayName),
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.draft.Email).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}

					return validEmail(s)
				}),
			huh.NewConfirm().
				Key("spendingAlerts").
				Title("Spending alerts").
				Value(&m.draft.SpendingAlerts),
			huh.NewConfirm().
				Key("weeklyReports").
				Title("Weekly reports").
				Value(&m.draft.WeeklyReports),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case settingsSavedMsg:
		m.state = settingsStateBrowse
		if msg.err == nil {
			m.status = "Settings saved."
		}

		return m, nil

	case spinner.TickMsg:
		if m.state != settingsStateSaving {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case settingsStateBrowse:
		return m.updateBrowse(msg)
	case settingsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m SettingsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "e":
		draft := m.store.State().Settings
		m.draft = &draft
		m.form = m.buildForm()
		m.state = settingsStateEdit
		m.status = ""

		return m, m.form.Init()
	case "x":
		ctx, cancel := CallCtx()
		defer cancel()

		m.store.Reset(ctx)
		m.status = "Settings reset to defaults."
	}

	return m, nil
}

func (m SettingsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = settingsStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = settingsStateSaving

	return m, tea.Batch(m.spinner.Tick, m.saveCmd(*m.draft))
}

func (m SettingsModel) saveCmd(s settings.Settings) tea.Cmd {
	store := m.store

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		store.Update(ctx, settings.Patch{
			SpendingAlerts: new(s.SpendingAlerts),
			WeeklyReports:  new(s.WeeklyReports),
			DisplayName:    new(s.DisplayName),
			Email:          new(s.Email),
		})

		return settingsSavedMsg{err: store.Save(ctx)}
	}
}

func onOff(b bool) string {
	if b {
		return okStyle.Render("on")
	}

	return faintStyle.Render("off")
}

func (m SettingsModel) View() string {
	switch m.state {
	case settingsStateEdit:
		return screenStyle.Render(m.form.View())
	case settingsStateSaving:
		return screenStyle.Render(fmt.Sprintf("%s Saving settings...", m.spinner.View()))
	}

	st := m.store.State()
	s := st.Settings

	name := s.DisplayName
	if name == "" {
		name = faintStyle.Render("not set")
	}

	email := s.Email
	if email == "" {
		email = faintStyle.Render("not set")
	}

	parts := []string{
		panelStyle.Render(fmt.Sprintf(
			"Display name    %s\nEmail           %s\nSpending alerts %s\nWeekly reports  %s",
			name, email, onOff(s.SpendingAlerts), onOff(s.WeeklyReports))),
	}

	if st.Err != "" {
		parts = append(parts, errorLine(st.Err))
	} else if m.status != "" {
		parts = append(parts, okStyle.Render(m.status))
	}

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
