package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/dashboard"
)

type dashboardLoadedMsg struct{}

type DashboardModel struct {
	CommonModel
	page    *dashboard.Page
	spinner spinner.Model
	now     func() time.Time
}

func NewDashboardModel(client dashboard.Client) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{page: dashboard.NewPage(client), spinner: s, now: time.Now}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	page := m.page

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.Mount(ctx)

		return dashboardLoadedMsg{}
	})
}

func (m DashboardModel) Close() { m.page.Unmount() }

func (m DashboardModel) refreshCmd() tea.Cmd {
	page := m.page

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.Refresh(ctx)

		return dashboardLoadedMsg{}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
	case dashboardLoadedMsg:
		return m, nil
	case spinner.TickMsg:
		if !m.page.State().IsLoading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	st := m.page.State()

	if st.IsLoading && st.Stats == nil {
		return screenStyle.Render(fmt.Sprintf("%s Loading dashboard...", m.spinner.View()))
	}

	var parts []string

	if st.IsLoading {
		parts = append(parts, faintStyle.Render(m.spinner.View()+" refreshing"))
	}

	if st.Err != "" {
		parts = append(parts, errorLine(st.Err))
	}

	if st.Stats != nil {
		parts = append(parts, renderStats(*st.Stats))
	}

	if len(st.StakingAssets) > 0 {
		parts = append(parts, "", titleStyle.Render("Staking"), renderStaking(st.StakingAssets))
	}

	if len(st.Activities) > 0 {
		parts = append(parts, "", titleStyle.Render("Recent activity"), renderActivities(st.Activities, m.now()))
	}

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderStats(s dashboard.Stats) string {
	change := okStyle.Render(FormatPercent(s.BalanceChange))
	if s.BalanceChange < 0 {
		change = errStyle.Render(FormatPercent(s.BalanceChange))
	}

	cards := []string{
		panelStyle.Render(fmt.Sprintf("Total balance\n%s %s", FormatMoney(s.TotalBalance), change)),
		panelStyle.Render(fmt.Sprintf("Monthly spend\n%s", FormatMoney(s.MonthlySpend))),
		panelStyle.Render(fmt.Sprintf("Investments\n%s", FormatMoney(s.Investments))),
		panelStyle.Render(fmt.Sprintf("Active SIPs\n%d", s.ActiveSIPs)),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderStaking(assets []dashboard.StakingAsset) string {
	var sb strings.Builder

	for _, a := range assets {
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(a.ChartColor)).
			Render(strings.Repeat("█", a.Allocation/5))

		fmt.Fprintf(&sb, "%-5s %-10s APY %-7s TVL %-8s %s %d%%\n",
			a.Symbol, a.Name, a.APY, a.TVL, bar, a.Allocation)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderActivities(activities []dashboard.Activity, now time.Time) string {
	var sb strings.Builder

	for _, a := range activities {
		status := faintStyle.Render(string(a.Status))

		switch a.Status {
		case dashboard.ActivityFailed:
			status = errStyle.Render(string(a.Status))
		case dashboard.ActivityPending:
			status = warnStyle.Render(string(a.Status))
		}

		fmt.Fprintf(&sb, "%-9s %-30s %12s %-5s %-9s %s\n",
			a.Type, a.Description, a.Amount, a.Asset, FormatAgo(a.Timestamp, now), status)
	}

	return strings.TrimRight(sb.String(), "\n")
}
