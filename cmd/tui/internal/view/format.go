package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats signed cents with two decimals.
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatMoney renders a currency amount with thousands separators, e.g. $24,093.82.
func FormatMoney(v float64) string {
	s := decimal.NewFromFloat(v).Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var sb strings.Builder

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(r)
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s$%s.%s", sign, sb.String(), frac)
}

// FormatPercent renders a percentage with one decimal and an explicit sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatAgo renders how long before now t happened, at the coarsest unit.
func FormatAgo(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}

	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}
