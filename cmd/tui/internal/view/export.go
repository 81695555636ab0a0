package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/export"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

type exportState int

const (
	exportStateRange exportState = iota
	exportStateOptions
	exportStateExporting
	exportStateResult
)

// exportOptions are the form bindings.
type exportOptions struct {
	filter transaction.Filter
	query  string
	path   string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state  exportState
	err    error
	picker RangePicker
	period RangeSelectedMsg

	form    *huh.Form
	opts    *exportOptions
	spinner spinner.Model
	file    string
	summary string
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		state:         exportStateRange,
		picker:        NewRangePicker(),
		opts:          &exportOptions{filter: transaction.FilterAll, path: "./exports"},
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Transactions" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sel, ok := msg.(RangeSelectedMsg); ok {
		m.period = sel
		m.form = m.buildOptionsForm()
		m.state = exportStateOptions

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateRange:
		return m.updateRange(msg)
	case exportStateOptions:
		return m.updateOptions(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateRange(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.Choosing() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ExportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateRange
			m.picker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	req := export.Request{
		Filter:    m.opts.filter,
		Query:     m.opts.query,
		StartDate: m.period.Start,
		EndDate:   m.period.End,
	}

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(req, m.opts.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.file
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) buildOptionsForm() *huh.Form {
	filters := make([]huh.Option[transaction.Filter], 0, len(transaction.Filters))
	for _, f := range transaction.Filters {
		filters = append(filters, huh.NewOption(string(f), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Filter]().
				Key("filter").
				Title("Transactions").
				Options(filters...).
				Value(&m.opts.filter),
			huh.NewInput().
				Key("query").
				Title("Search").
				Placeholder("optional").
				Value(&m.opts.query),
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.opts.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateRange:
		return screenStyle.Render(m.picker.View())

	case exportStateOptions:
		return screenStyle.Render(
			faintStyle.Render("Range: "+m.period.Label()) + "\n\n" + m.form.View(),
		)

	case exportStateExporting:
		return screenStyle.Render(
			fmt.Sprintf("%s Exporting transactions...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return screenStyle.Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return screenStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			faintStyle.Render(m.file),
			"",
			"Summary:",
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	file string
	body string
	err  error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(req export.Request, dir string) tea.Cmd {
	svc := m.exportService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		txs, err := svc.Export(ctx, req)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if dir == "" {
			dir = "."
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating %s: %w", dir, err)}
		}

		file := filepath.Join(dir, fmt.Sprintf("export_%s.zip", time.Now().Format("20060102_150405")))

		f, err := os.Create(file)
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("creating %s: %w", file, err)}
		}

		if err := export.WriteArchive(f, txs); err != nil {
			f.Close()
			return exportResultMsg{err: err}
		}

		if err := f.Close(); err != nil {
			return exportResultMsg{err: fmt.Errorf("closing %s: %w", file, err)}
		}

		return exportResultMsg{file: file, body: export.Digest(txs)}
	}
}
