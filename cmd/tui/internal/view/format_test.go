package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-42.10", FormatAmount(-4210))
	assert.Equal(t, "0.05", FormatAmount(5))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 24093.82, want: "$24,093.82"},
		{in: 5843.42, want: "$5,843.42"},
		{in: 999, want: "$999.00"},
		{in: -1234567.5, want: "-$1,234,567.50"},
		{in: 0, want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.in))
		})
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", FormatAgo(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", FormatAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2h ago", FormatAgo(now.Add(-2*time.Hour), now))
	assert.Equal(t, "3d ago", FormatAgo(now.Add(-72*time.Hour), now))
}
