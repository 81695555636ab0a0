package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickerAt(now time.Time) RangePicker {
	p := NewRangePicker()
	p.now = func() time.Time { return now }

	return p
}

func press(p RangePicker, keys ...tea.KeyMsg) (RangePicker, tea.Msg) {
	var cmd tea.Cmd
	for _, k := range keys {
		p, cmd = p.Update(k)
	}

	if cmd == nil {
		return p, nil
	}

	return p, cmd()
}

func downs(n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, n+1)
	for range n {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyDown})
	}

	return append(keys, tea.KeyMsg{Type: tea.KeyEnter})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangePicker_Presets(t *testing.T) {
	now := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		row       int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "ThisMonth", row: 0, wantStart: day(2024, 3, 1), wantEnd: day(2024, 3, 14)},
		{name: "LastMonth", row: 1, wantStart: day(2024, 2, 1), wantEnd: day(2024, 2, 29)},
		{name: "Last90Days", row: 2, wantStart: day(2023, 12, 16), wantEnd: day(2024, 3, 14)},
		{name: "YearToDate", row: 3, wantStart: day(2024, 1, 1), wantEnd: day(2024, 3, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg := press(pickerAt(now), downs(tt.row)...)

			sel, ok := msg.(RangeSelectedMsg)
			require.True(t, ok)
			require.NotNil(t, sel.Start)
			require.NotNil(t, sel.End)
			assert.Equal(t, tt.wantStart, *sel.Start)
			assert.Equal(t, tt.wantEnd.Add(23*time.Hour+59*time.Minute+59*time.Second), *sel.End)
		})
	}
}

func TestRangePicker_AllTime(t *testing.T) {
	_, msg := press(pickerAt(time.Now()), downs(len(rangePresets)+rowAllTime)...)

	sel, ok := msg.(RangeSelectedMsg)
	require.True(t, ok)
	assert.Nil(t, sel.Start)
	assert.Nil(t, sel.End)
	assert.Equal(t, "All time", sel.Label())
}

func TestRangePicker_CursorWraps(t *testing.T) {
	p, _ := press(pickerAt(time.Now()), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.Choosing())
}

func TestRangePicker_Custom(t *testing.T) {
	p, _ := press(pickerAt(time.Now()), downs(len(rangePresets)+rowCustom)...)
	require.False(t, p.Choosing())

	p.inputs[0].SetValue("2024-03-10")
	p.inputs[1].SetValue("03/31/2024")

	p, msg := press(p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, msg)
	assert.Contains(t, p.View(), "invalid end date")

	p.inputs[1].SetValue("2024-03-01")

	p, msg = press(p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, msg)
	assert.Contains(t, p.View(), "end date is before start date")

	p.inputs[1].SetValue("2024-03-31")

	p, msg = press(p, tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := msg.(RangeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "2024-03-10 to 2024-03-31", sel.Label())
	assert.Nil(t, p.err)
}

func TestRangePicker_EscAndReset(t *testing.T) {
	p, _ := press(pickerAt(time.Now()), downs(len(rangePresets)+rowCustom)...)
	p.inputs[0].SetValue("2024-01-01")

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, p.Choosing())

	p.Reset()
	assert.Equal(t, 0, p.cursor)
	assert.Empty(t, p.inputs[0].Value())
}
