package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateSearch
)

type txLoadedMsg struct{}

type TransactionsModel struct {
	CommonModel
	page *transaction.Page

	state   txState
	table   table.Model
	search  textinput.Model
	spinner spinner.Model
}

func NewTransactionsModel(client transaction.Client) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 32},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "description, category or id"
	ti.Prompt = "Search: "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return TransactionsModel{
		page:    transaction.NewPage(client),
		table:   t,
		search:  ti,
		spinner: sp,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateSearch {
		return "Enter: done | Esc: clear search"
	}

	return "Esc: back | f: filter | /: search | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	page := m.page

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.Mount(ctx)

		return txLoadedMsg{}
	})
}

func (m TransactionsModel) Close() { m.page.Unmount() }

func (m TransactionsModel) refreshCmd() tea.Cmd {
	page := m.page

	return func() tea.Msg {
		ctx, cancel := CallCtx()
		defer cancel()

		page.Refresh(ctx)

		return txLoadedMsg{}
	}
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil

	case txLoadedMsg:
		m.refreshTable()
		return m, nil

	case spinner.TickMsg:
		if !m.page.State().IsLoading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	if m.state == txStateSearch {
		return m.updateSearch(msg)
	}

	return m.updateBrowse(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		case "f":
			m.page.SetFilter(nextFilter(m.page.State().Filter))
			m.refreshTable()

			return m, nil
		case "/":
			m.state = txStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.page.SetSearch("")
			fallthrough
		case tea.KeyEnter:
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.page.SetSearch(m.search.Value())
	m.refreshTable()

	return m, cmd
}

func nextFilter(f transaction.Filter) transaction.Filter {
	i := slices.Index(transaction.Filters, f)
	return transaction.Filters[(i+1)%len(transaction.Filters)]
}

func (m *TransactionsModel) refreshTable() {
	txs := m.page.Filtered()

	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			tx.Category,
			FormatAmount(tx.Amount),
			string(tx.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) View() string {
	st := m.page.State()

	if st.IsLoading && len(st.Transactions) == 0 {
		return screenStyle.Render(fmt.Sprintf("%s Loading transactions...", m.spinner.View()))
	}

	filters := make([]string, 0, len(transaction.Filters))
	for _, f := range transaction.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == st.Filter {
			label = activeStyle("[" + label + "]")
		}

		filters = append(filters, label)
	}

	sum := st.Summary
	summary := fmt.Sprintf("Income %s | Expenses %s | Net %s",
		okStyle.Render(FormatAmount(sum.TotalIncome)),
		errStyle.Render(FormatAmount(sum.TotalExpenses)),
		FormatAmount(sum.NetBalance))

	parts := []string{summary, "Filter: " + strings.Join(filters, " ")}

	if m.state == txStateSearch || st.Query != "" {
		parts = append(parts, m.search.View())
	}

	if st.Err != "" {
		parts = append(parts, errorLine(st.Err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if len(m.table.Rows()) == 0 {
		tableView = faintStyle.Render("No transactions match.")
	}

	parts = append(parts, "", tableView)

	if st.IsLoading {
		parts = append(parts, faintStyle.Render(m.spinner.View()+" refreshing"))
	}

	return screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
