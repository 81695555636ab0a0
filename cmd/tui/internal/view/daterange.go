package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RangeSelectedMsg carries the chosen export window. Both bounds are nil
// when every transaction is wanted.
type RangeSelectedMsg struct {
	Start *time.Time
	End   *time.Time
}

func (m RangeSelectedMsg) Label() string {
	if m.Start == nil || m.End == nil {
		return "All time"
	}

	return fmt.Sprintf("%s to %s", FormatDate(*m.Start), FormatDate(*m.End))
}

type rangePreset struct {
	label string
	span  func(today time.Time) (from, to time.Time)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// rangePresets are evaluated against today's date in UTC.
var rangePresets = []rangePreset{
	{"This month", func(today time.Time) (time.Time, time.Time) {
		return monthStart(today), today
	}},
	{"Last month", func(today time.Time) (time.Time, time.Time) {
		from := monthStart(today).AddDate(0, -1, 0)
		return from, from.AddDate(0, 1, -1)
	}},
	{"Last 90 days", func(today time.Time) (time.Time, time.Time) {
		return today.AddDate(0, 0, -89), today
	}},
	{"Year to date", func(today time.Time) (time.Time, time.Time) {
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), today
	}},
}

// Menu rows after the presets.
const (
	rowAllTime = iota
	rowCustom
	extraRows
)

func emitRange(from, to time.Time) tea.Cmd {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)

	return func() tea.Msg {
		return RangeSelectedMsg{Start: &start, End: &end}
	}
}

func dateInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = time.DateOnly
	in.CharLimit = len(time.DateOnly)
	in.Width = len(time.DateOnly) + 2

	return in
}

// RangePicker chooses a preset window or a custom pair of dates.
type RangePicker struct {
	now    func() time.Time
	cursor int

	custom bool
	inputs [2]textinput.Model
	focus  int
	err    error
}

func NewRangePicker() RangePicker {
	return RangePicker{
		now:    time.Now,
		inputs: [2]textinput.Model{dateInput("From: "), dateInput("To:   ")},
	}
}

// Choosing reports whether the preset menu is showing.
func (m RangePicker) Choosing() bool {
	return !m.custom
}

// Reset goes back to the menu with nothing typed.
func (m *RangePicker) Reset() {
	m.cursor = 0
	m.custom = false
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

func (m RangePicker) Update(msg tea.Msg) (RangePicker, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	switch {
	case !m.custom && isKey:
		return m.updateMenu(key)
	case m.custom && isKey:
		if next, cmd, handled := m.updateCustom(key); handled {
			return next, cmd
		}
	}

	if !m.custom {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m RangePicker) updateMenu(key tea.KeyMsg) (RangePicker, tea.Cmd) {
	rows := len(rangePresets) + extraRows

	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor + rows - 1) % rows
	case "down", "j":
		m.cursor = (m.cursor + 1) % rows
	case "enter":
		if m.cursor < len(rangePresets) {
			return m, emitRange(rangePresets[m.cursor].span(m.today()))
		}

		if m.cursor-len(rangePresets) == rowAllTime {
			return m, func() tea.Msg { return RangeSelectedMsg{} }
		}

		m.custom = true
		m.focus = 0

		return m, m.inputs[0].Focus()
	}

	return m, nil
}

func (m RangePicker) updateCustom(key tea.KeyMsg) (RangePicker, tea.Cmd, bool) {
	switch key.String() {
	case "esc":
		m.custom = false
		m.err = nil

		return m, nil, true
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus

		return m, m.inputs[m.focus].Focus(), true
	case "enter":
		from, to, err := m.customRange()
		m.err = err

		if err != nil {
			return m, nil, true
		}

		return m, emitRange(from, to), true
	}

	return m, nil, false
}

func (m RangePicker) customRange() (time.Time, time.Time, error) {
	var days [2]time.Time

	for i, name := range [2]string{"start", "end"} {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(m.inputs[i].Value()))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid %s date (YYYY-MM-DD)", name)
		}

		days[i] = d
	}

	if days[1].Before(days[0]) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
	}

	return days[0], days[1], nil
}

func (m RangePicker) today() time.Time {
	n := m.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (m RangePicker) View() string {
	var sb strings.Builder

	if m.custom {
		sb.WriteString("Custom range\n\n")
		sb.WriteString(m.inputs[0].View() + "\n" + m.inputs[1].View())
		sb.WriteString("\n\n" + faintStyle.Render("Enter: confirm | Tab: next field | Esc: presets"))
	} else {
		labels := make([]string, 0, len(rangePresets)+extraRows)
		for _, p := range rangePresets {
			labels = append(labels, p.label)
		}

		labels = append(labels, "All time", "Custom range...")

		sb.WriteString("Export which period?\n\n")

		for i, l := range labels {
			if i == m.cursor {
				sb.WriteString(activeStyle("> "+l) + "\n")
				continue
			}

			sb.WriteString("  " + l + "\n")
		}
	}

	if m.err != nil {
		sb.WriteString("\n" + errorLine(m.err.Error()))
	}

	return sb.String()
}
