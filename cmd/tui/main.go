package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/helios/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/helios/internal/advisory"
	"github.com/MrJamesThe3rd/helios/internal/auth"
	"github.com/MrJamesThe3rd/helios/internal/config"
	"github.com/MrJamesThe3rd/helios/internal/export"
	"github.com/MrJamesThe3rd/helios/internal/facade"
	"github.com/MrJamesThe3rd/helios/internal/persist"
	"github.com/MrJamesThe3rd/helios/internal/settings"
	"github.com/MrJamesThe3rd/helios/internal/storage"
	"github.com/MrJamesThe3rd/helios/internal/ui"
)

type deps struct {
	name    string
	facade  *facade.Facade
	storage persist.Storage
	export  *export.Service
}

type screen struct {
	key   string
	label string
	build func(m *model) view.View
}

var screens = []screen{
	{"1", "Dashboard", func(m *model) view.View { return view.NewDashboardModel(m.facade.Dashboard) }},
	{"2", "Transactions", func(m *model) view.View { return view.NewTransactionsModel(m.facade.Dashboard) }},
	{"3", "Network Insights", func(m *model) view.View { return view.NewInsightsModel(m.facade.Insights) }},
	{"4", "Financial Report", func(m *model) view.View { return view.NewReportModel(m.advisoryStore) }},
	{"5", "Assistant", func(m *model) view.View { return view.NewChatModel(m.facade.Chat) }},
	{"6", "Import Documents", func(m *model) view.View { return view.NewImportModel(m.facade.Documents, m.facade.Expense) }},
	{"7", "Export Transactions", func(m *model) view.View { return view.NewExportModel(m.export) }},
	{"8", "Scam Check", func(m *model) view.View { return view.NewFraudModel(m.facade.Fraud) }},
	{"9", "Settings", func(m *model) view.View { return view.NewSettingsModel(m.settingsStore) }},
}

type sessionCheckedMsg struct{}

type loggedOutMsg struct{}

type model struct {
	deps

	authStore     *auth.Store
	advisoryStore *advisory.Store
	settingsStore *settings.Store
	uiStore       *ui.Store

	login  view.LoginModel
	active *view.Boundary
	width  int
	height int
}

// newModel rehydrates the stores from durable storage.
func newModel(d deps) *model {
	ctx, cancel := view.CallCtx()
	defer cancel()

	authStore := auth.NewStore(ctx, d.facade.Auth, d.storage)

	return &model{
		deps:          d,
		authStore:     authStore,
		advisoryStore: advisory.NewStore(ctx, d.facade.FinancialInsights, d.storage),
		settingsStore: settings.NewStore(ctx, d.facade.Settings, d.storage),
		uiStore:       ui.NewStore(),
		login:         view.NewLoginModel(authStore, fmt.Sprintf("Demo account: %s / %s", facade.DemoEmail, facade.DemoPassword)),
	}
}

func (m *model) Title() string { return m.name }

func (m *model) ShortHelp() string {
	if !m.authStore.CheckAuth() {
		return m.login.ShortHelp()
	}

	if m.active != nil {
		return m.active.ShortHelp() + " | ctrl+b: sidebar"
	}

	return "1-9: open | ctrl+b: sidebar | o: sign out | q: quit"
}

func (m *model) Init() tea.Cmd {
	if !m.authStore.CheckAuth() {
		return m.login.Init()
	}

	m.uiStore.SetGlobalLoading(true)
	store, uiStore := m.authStore, m.uiStore

	return func() tea.Msg {
		ctx, cancel := view.CallCtx()
		defer cancel()

		store.FetchUser(ctx)
		uiStore.SetGlobalLoading(false)

		return sessionCheckedMsg{}
	}
}

func (m *model) open(s screen) tea.Cmd {
	m.closeActive()
	m.active = view.NewBoundary(s.label, func() view.View { return s.build(m) }, nil)

	cmd := m.active.Init()
	if m.width > 0 {
		m.active.Update(tea.WindowSizeMsg{Width: m.contentWidth(), Height: m.height})
	}

	return cmd
}

func (m *model) closeActive() {
	if m.active != nil {
		m.active.Close()
		m.active = nil
	}
}

func (m *model) contentWidth() int {
	if m.uiStore.State().SidebarOpen {
		return max(m.width-sidebarWidth, 20)
	}

	return m.width
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closeActive()
			return m, tea.Quit
		case "ctrl+b":
			m.uiStore.ToggleSidebar()
			if m.active != nil && m.width > 0 {
				m.active.Update(tea.WindowSizeMsg{Width: m.contentWidth(), Height: m.height})
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.uiStore.SetSidebarCollapsed(msg.Width < 100)

		msg.Width = m.contentWidth()
		if m.active != nil {
			_, cmd := m.active.Update(msg)
			return m, cmd
		}

		next, cmd := m.login.Update(msg)
		m.login = next.(view.LoginModel)

		return m, cmd

	case sessionCheckedMsg:
		if !m.authStore.CheckAuth() {
			m.closeActive()
			return m, m.login.Init()
		}

		return m, nil

	case view.LoggedInMsg:
		return m, nil

	case loggedOutMsg:
		m.login = view.NewLoginModel(m.authStore, fmt.Sprintf("Demo account: %s / %s", facade.DemoEmail, facade.DemoPassword))
		return m, m.login.Init()

	case view.BackMsg:
		m.closeActive()
		return m, nil
	}

	if !m.authStore.CheckAuth() {
		next, cmd := m.login.Update(msg)
		m.login = next.(view.LoginModel)

		return m, cmd
	}

	if m.active != nil {
		_, cmd := m.active.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.updateMenu(keyMsg)
	}

	return m, nil
}

func (m *model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "o":
		store := m.authStore

		return m, func() tea.Msg {
			ctx, cancel := view.CallCtx()
			defer cancel()

			store.Logout(ctx)

			return loggedOutMsg{}
		}
	}

	for _, s := range screens {
		if msg.String() == s.key {
			return m, m.open(s)
		}
	}

	return m, nil
}

const sidebarWidth = 26

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth-2).
			Padding(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("240"))
	helpStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
)

func (m *model) menu(compact bool) string {
	lines := []string{titleStyle.Render(m.name), ""}

	if u := m.authStore.State().User; u != nil && !compact {
		lines = append(lines, fmt.Sprintf("%s (%s)", u.Name, u.Plan), "")
	}

	for _, s := range screens {
		label := s.label
		if compact {
			label = label[:1]
		}

		if m.active != nil && m.active.Title() == s.label {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(label)
		}

		lines = append(lines, fmt.Sprintf("%s. %s", s.key, label))
	}

	if m.active == nil {
		lines = append(lines, "", "o. Sign out", "q. Quit")
	}

	if m.uiStore.State().GlobalLoading {
		lines = append(lines, "", helpStyle.Render("Checking session..."))
	}

	return strings.Join(lines, "\n")
}

func (m *model) View() string {
	if !m.authStore.CheckAuth() {
		return m.login.View()
	}

	st := m.uiStore.State()

	content := lipgloss.NewStyle().Padding(2).Render(m.menu(false))
	if m.active != nil {
		content = m.active.View()
	}

	if st.SidebarOpen && m.active != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.menu(st.SidebarCollapsed)), content)
	}

	return content + "\n" + helpStyle.Render(m.ShortHelp())
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file when requested.
	if path := os.Getenv("HELIOS_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "helios")
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()

		slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	}

	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	opts := []facade.Option{
		facade.WithLatency(cfg.Facade.LatencyMin, cfg.Facade.LatencyMax),
		facade.WithSessionSecret([]byte(cfg.Facade.SessionSecret)),
		facade.WithSessionTTL(cfg.Facade.SessionTTL),
	}
	if backend.Rules != nil {
		opts = append(opts, facade.WithCategoryRules(backend.Rules))
	}

	f, err := facade.New(ctx, backend.State, opts...)
	if err != nil {
		slog.Error("failed to build facade", "error", err)
		os.Exit(1)
	}

	d := deps{name: cfg.App.Name, facade: f, storage: backend.State, export: export.NewService(f.Dashboard)}

	root := view.NewBoundary(cfg.App.Name, func() view.View { return newModel(d) }, func(ctx context.Context) error {
		return persist.Purge(ctx, backend.State)
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
