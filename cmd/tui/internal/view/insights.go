package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/insights"
)

const chartWidth = 40

type insightsLoadedMsg struct{}

type InsightsModel struct {
	CommonModel
	page    *insights.Page
	spinner spinner.Model
}

func NewInsightsModel(client insights.Client) InsightsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return InsightsModel{page: insights.NewPage(client), spinner: s}
}

func (m InsightsModel) Title() string     { return "Network Insights" }
func (m InsightsModel) ShortHelp() string { return "Esc: back | ←/→: period | r: refresh" }

func (m InsightsModel) Init() tea.Cmd {
	page := m.page

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.Mount(ctx)

		return insightsLoadedMsg{}
	})
}

func (m InsightsModel) Close() { m.page.Unmount() }

func (m InsightsModel) periodCmd(period string) tea.Cmd {
	page := m.page

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.SetPeriod(ctx, period)

		return insightsLoadedMsg{}
	}
}

func (m InsightsModel) refreshCmd() tea.Cmd {
	page := m.page

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.Refresh(ctx)

		return insightsLoadedMsg{}
	}
}

func shiftPeriod(current string, step int) string {
	i := slices.Index(insights.Periods, current)
	if i < 0 {
		return insights.DefaultPeriod
	}

	n := len(insights.Periods)

	return insights.Periods[((i+step)%n+n)%n]
}

func (m InsightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
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
		case "right", "l", "tab":
			return m, m.periodCmd(shiftPeriod(m.page.State().Period, 1))
		case "left", "h", "shift+tab":
			return m, m.periodCmd(shiftPeriod(m.page.State().Period, -1))
		}
	}

	return m, nil
}

func (m InsightsModel) View() string {
	st := m.page.State()

	if st.IsLoading && st.Stats == nil {
		return screenStyle.Render(fmt.Sprintf("%s Loading network insights...", m.spinner.View()))
	}

	var parts []string

	if st.Err != "" {
		parts = append(parts, errorLine(st.Err))
	}

	if s := st.Stats; s != nil {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(fmt.Sprintf("Throughput\n%.1f TB/s", s.TotalThroughput)),
			panelStyle.Render(fmt.Sprintf("Nodes\n%d in %d regions", s.TotalNodes, s.TotalRegions)),
			panelStyle.Render(fmt.Sprintf("Staking APY\n%.1f%% (%s)", s.StakingAPY, FormatPercent(s.APYChange))),
			panelStyle.Render(fmt.Sprintf("Latency\n%.0f ms", s.NetworkLatency)),
			panelStyle.Render(fmt.Sprintf("Uptime\n%.2f%%", s.Uptime)),
		))

		var regions strings.Builder
		for _, r := range s.Regions {
			fmt.Fprintf(&regions, "%-16s %5d nodes  %s %d%%\n",
				r.Name, r.Nodes, strings.Repeat("▮", r.Utilization/10), r.Utilization)
		}

		parts = append(parts, "", titleStyle.Render("Regions"), strings.TrimRight(regions.String(), "\n"))
	}

	periods := make([]string, 0, len(insights.Periods))
	for _, p := range insights.Periods {
		if p == st.Period {
			p = activeStyle("[" + p + "]")
		}

		periods = append(periods, p)
	}

	parts = append(parts, "", titleStyle.Render("Performance")+"  "+strings.Join(periods, " "), renderChart(st.Chart))

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderChart draws uv and pv as horizontal bars scaled to the largest value.
func renderChart(points []insights.ChartPoint) string {
	if len(points) == 0 {
		return faintStyle.Render("No chart data.")
	}

	peak := 0.0
	for _, p := range points {
		peak = max(peak, p.UV, p.PV)
	}

	if peak == 0 {
		peak = 1
	}

	uv := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	pv := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	var sb strings.Builder
	for _, p := range points {
		fmt.Fprintf(&sb, "%-5s %s %.0f\n      %s %.0f\n",
			p.Name,
			uv.Render(strings.Repeat("█", int(p.UV/peak*chartWidth))), p.UV,
			pv.Render(strings.Repeat("█", int(p.PV/peak*chartWidth))), p.PV)
	}

	return strings.TrimRight(sb.String(), "\n")
}
