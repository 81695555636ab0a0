package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/auth"
)

type loginMode int

const (
	loginModeSignIn loginMode = iota
	loginModeSignUp
)

// credentials are the form bindings. They live behind a pointer so copies of
// the model keep writing to the same place.
type credentials struct {
	name     string
	email    string
	password string
	phone    string
}

// LoggedInMsg is emitted once the auth store holds an identity.
type LoggedInMsg struct{}

type loginResultMsg struct {
	err error
}

type LoginModel struct {
	CommonModel
	store *auth.Store
	hint  string

	mode    loginMode
	fields  *credentials
	form    *huh.Form
	spinner spinner.Model
	busy    bool
}

func NewLoginModel(store *auth.Store, hint string) LoginModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := LoginModel{store: store, hint: hint, fields: &credentials{}, spinner: s}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string {
	if m.mode == loginModeSignUp {
		return "Create Account"
	}

	return "Sign In"
}

func (m LoginModel) ShortHelp() string {
	if m.mode == loginModeSignUp {
		return "Enter: submit | ctrl+t: sign in instead | ctrl+c: quit"
	}

	return "Enter: submit | ctrl+t: create an account | ctrl+c: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func validEmail(s string) error {
	if !strings.Contains(s, "@") {
		return errors.New("enter a valid email address")
	}

	return nil
}

func (m LoginModel) buildForm() *huh.Form {
	email := huh.NewInput().
		Key("email").
		Title("Email").
		Value(&m.fields.email).
		Validate(validEmail)

	password := huh.NewInput().
		Key("password").
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.fields.password).
		Validate(notBlank("password"))

	if m.mode == loginModeSignIn {
		return huh.NewForm(huh.NewGroup(email, password)).WithWidth(45).WithShowHelp(false)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Full name").
				Value(&m.fields.name).
				Validate(notBlank("name")),
			email,
			password,
			huh.NewInput().
				Key("phone").
				Title("Phone").
				Placeholder("optional").
				Value(&m.fields.phone),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case loginResultMsg:
		m.busy = false

		if msg.err != nil {
			m.fields.password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{} }

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

		if msg.String() == "ctrl+t" {
			if m.mode == loginModeSignIn {
				m.mode = loginModeSignUp
			} else {
				m.mode = loginModeSignIn
			}

			m.store.ClearError()
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.busy = true

	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m LoginModel) submitCmd() tea.Cmd {
	store, mode, c := m.store, m.mode, *m.fields

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		if mode == loginModeSignUp {
			return loginResultMsg{err: store.Signup(ctx, auth.SignupParams{
				Name:     strings.TrimSpace(c.name),
				Email:    strings.TrimSpace(c.email),
				Password: c.password,
				Phone:    strings.TrimSpace(c.phone),
			})}
		}

		return loginResultMsg{err: store.Login(ctx, strings.TrimSpace(c.email), c.password)}
	}
}

func (m LoginModel) View() string {
	header := titleStyle.Render("Helios")

	if m.busy {
		return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", fmt.Sprintf("%s Signing in...", m.spinner.View())))
	}

	parts := []string{header, "", m.form.View()}

	if msg := m.store.State().Err; msg != "" {
		parts = append(parts, "", errorLine(msg))
	}

	if m.hint != "" && m.mode == loginModeSignIn {
		parts = append(parts, "", faintStyle.Render(m.hint))
	}

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
