package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/facade"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

type StatementUploader interface {
	UploadStatement(ctx context.Context, name string, r io.Reader) (*facade.StatementImport, error)
}

type BillProcessor interface {
	ProcessBill(ctx context.Context, name string, content []byte) (transaction.Transaction, error)
}

type importSource int

const (
	importSourceStatement importSource = iota
	importSourceBill
)

func (s importSource) String() string {
	if s == importSourceBill {
		return "Bill or receipt"
	}

	return "Bank statement (CSV)"
}

type importState int

const (
	importStateSourceSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	statements StatementUploader
	bills      BillProcessor

	state        importState
	filePicker   filepicker.Model
	sourceCursor int
	source       importSource

	status   string
	err      error
	imported []transaction.Transaction
}

func NewImportModel(statements StatementUploader, bills BillProcessor) ImportModel {
	return ImportModel{
		statements: statements,
		bills:      bills,
		filePicker: newFilePicker(),
	}
}

func (m ImportModel) Title() string { return "Import Documents" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.filePicker.SetHeight(max(msg.Height-8, 5))

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateSourceSelect {
			return m.updateSourceSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.imported = msg.imported
		m.status = msg.summary

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", filepath.Base(path))

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateSourceSelect
		return m, nil
	case importStateResult:
		m.state = importStateSourceSelect
		m.err = nil
		m.status = ""
		m.imported = nil

		return m, nil
	case importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateSourceSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case tea.KeyDown:
		if m.sourceCursor < int(importSourceBill) {
			m.sourceCursor++
		}
	case tea.KeyEnter:
		m.source = importSource(m.sourceCursor)
		m.state = importStateFilePick

		m.filePicker.AllowedTypes = []string{".csv", ".txt"}
		if m.source == importSourceBill {
			m.filePicker.AllowedTypes = nil
		}

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSourceSelect:
		return m.viewSourceSelect()
	case importStateFilePick:
		return screenStyle.Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.source, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewSourceSelect() string {
	s := "What are you importing?\n\n"

	for i := importSourceStatement; i <= importSourceBill; i++ {
		cursor := " "
		if int(i) == m.sourceCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	var sb strings.Builder
	for _, tx := range m.imported {
		fmt.Fprintf(&sb, "%s  %10s  %-16s %s\n", FormatDate(tx.Date), FormatAmount(tx.Amount), tx.Category, tx.Description)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		okStyle.Render(m.status) + "\n\n" + sb.String() + "\n(Esc to go back)",
	)
}

// Messages

type importResultMsg struct {
	imported []transaction.Transaction
	summary  string
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	statements, bills, source := m.statements, m.bills, m.source

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		name := filepath.Base(path)

		if source == importSourceBill {
			content, err := os.ReadFile(path)
			if err != nil {
				return importResultMsg{err: fmt.Errorf("reading %s: %w", name, err)}
			}

			tx, err := bills.ProcessBill(ctx, name, content)
			if err != nil {
				return importResultMsg{err: err}
			}

			return importResultMsg{
				imported: []transaction.Transaction{tx},
				summary:  fmt.Sprintf("Bill recorded: %s pending review.", FormatAmount(tx.Amount)),
			}
		}

		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("opening %s: %w", name, err)}
		}
		defer f.Close()

		res, err := statements.UploadStatement(ctx, name, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{
			imported: res.Imported,
			summary: fmt.Sprintf("Imported %d transactions (%s, %s). Skipped %d duplicates.",
				len(res.Imported), res.Profile, res.Charset, res.Duplicates),
		}
	}
}
