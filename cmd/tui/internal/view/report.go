package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/advisory"
	"github.com/MrJamesThe3rd/helios/internal/report"
)

type reportState int

const (
	reportStateView reportState = iota
	reportStateFilePick
	reportStateUploading
)

type reportUploadedMsg struct {
	err error
}

type reportClearedMsg struct{}

type ReportModel struct {
	CommonModel
	store *advisory.Store

	state      reportState
	filePicker filepicker.Model
	spinner    spinner.Model

	// validation errors stay in the view and never reach the store
	validationErr string
}

func newFilePicker(allowed ...string) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = allowed
	fp.SetHeight(15)

	return fp
}

func NewReportModel(store *advisory.Store) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportModel{
		store:      store,
		filePicker: newFilePicker(".pdf", ".png", ".jpg", ".jpeg"),
		spinner:    s,
	}
}

func (m ReportModel) Title() string { return "Financial Report" }

func (m ReportModel) ShortHelp() string {
	switch m.state {
	case reportStateFilePick:
		return "Enter: select | Esc: cancel"
	case reportStateUploading:
		return "Analyzing..."
	}

	return "Esc: back | u: upload statement | c: clear report"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.filePicker.SetHeight(max(msg.Height-8, 5))

	case reportUploadedMsg:
		m.state = reportStateView
		return m, nil

	case reportClearedMsg:
		return m, nil

	case spinner.TickMsg:
		if m.state != reportStateUploading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch m.state {
		case reportStateView:
			return m.updateView(msg)
		case reportStateUploading:
			return m, nil
		case reportStateFilePick:
			if msg.Type == tea.KeyEsc {
				m.state = reportStateView
				return m, nil
			}
		}
	}

	if m.state != reportStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m.upload(path)
	}

	return m, cmd
}

func (m ReportModel) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, Back
	case "u":
		m.state = reportStateFilePick
		m.validationErr = ""
		m.store.ClearError()

		return m, m.filePicker.Init()
	case "c":
		store := m.store
		m.validationErr = ""

		return m, func() tea.Msg {
			ctx, cancel := CallCtx()
			defer cancel()

			store.ClearReport(ctx)

			return reportClearedMsg{}
		}
	}

	return m, nil
}

func (m ReportModel) upload(path string) (tea.Model, tea.Cmd) {
	content, err := os.ReadFile(path)
	if err != nil {
		m.state = reportStateView
		m.validationErr = fmt.Sprintf("reading %s: %v", filepath.Base(path), err)

		return m, nil
	}

	st := advisory.Statement{Name: filepath.Base(path), Content: content}
	if err := advisory.Validate(st); err != nil {
		m.state = reportStateView
		m.validationErr = err.Error()

		return m, nil
	}

	m.state = reportStateUploading
	store := m.store

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		return reportUploadedMsg{err: store.UploadStatement(ctx, st)}
	})
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateFilePick:
		return screenStyle.Render("Select a statement (PDF, PNG or JPG):\n\n" + m.filePicker.View())
	case reportStateUploading:
		return screenStyle.Render(fmt.Sprintf("%s Analyzing statement...", m.spinner.View()))
	}

	st := m.store.State()

	var parts []string

	if m.validationErr != "" {
		parts = append(parts, errorLine(m.validationErr), "")
	}

	if st.Err != "" {
		parts = append(parts, errorLine(st.Err), "")
	}

	if st.Report == nil {
		parts = append(parts, faintStyle.Render("No report yet. Press u to upload a bank statement."))
		return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}

	parts = append(parts,
		faintStyle.Render("From "+st.UploadedFileName),
		renderReport(st.Report),
	)

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func toneStyle(t report.Tone) lipgloss.Style {
	switch t {
	case report.TonePositive:
		return okStyle
	case report.ToneRecovering:
		return warnStyle
	case report.ToneCritical:
		return errStyle
	}

	return faintStyle
}

func renderReport(r *report.Report) string {
	p := r.ClientProfile
	fa := r.FinancialAnalysis
	metrics := report.Derive(r)

	profile := fmt.Sprintf("%s  %s\n%s", titleStyle.Render(p.Name), faintStyle.Render(p.AccountNumber), p.AnalysisPeriod)

	liquidity := toneStyle(report.ClassifyLiquidity(fa.Liquidity.Status)).Render(fa.Liquidity.Status)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(fmt.Sprintf("Net cash flow\n%s", FormatMoney(metrics.NetCashFlow))),
		panelStyle.Render(fmt.Sprintf("Savings rate\n%.1f%%", metrics.SavingsRate)),
		panelStyle.Render(fmt.Sprintf("Burn rate\n%.1f%%", metrics.BurnRate)),
		panelStyle.Render(fmt.Sprintf("Balance\n%s (%s)", FormatMoney(fa.Liquidity.EndBalance), FormatPercent(metrics.GrowthPercent))),
	)

	flows := fmt.Sprintf("Credits %s | Debits %s | Fees %s | Interest %s",
		FormatMoney(fa.CashFlow.TotalCredits),
		FormatMoney(fa.CashFlow.TotalDebits),
		FormatMoney(fa.CostBenefit.TotalFees),
		FormatMoney(fa.CostBenefit.InterestEarnedPeriod))

	var recs strings.Builder
	for i, rec := range r.StrategicRecommendations {
		fmt.Fprintf(&recs, "%d. [%s] %s\n   %s\n", i+1, rec.Category, rec.Action, faintStyle.Render(rec.Details))
	}

	width := 90

	return lipgloss.JoinVertical(lipgloss.Left,
		profile,
		"",
		lipgloss.NewStyle().Width(width).Render(r.ExecutiveSummary),
		"",
		cards,
		flows,
		"Liquidity: "+liquidity+" "+faintStyle.Render(fa.Liquidity.Insight),
		"",
		titleStyle.Render("Recommendations"),
		strings.TrimRight(recs.String(), "\n"),
	)
}
