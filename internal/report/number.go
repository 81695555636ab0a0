package report

import (
	"encoding/json"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var numberNoise = strings.NewReplacer(",", "", "$", "", " ", "", "\u00a0", "")

// maxExponent bounds decimal exponents; float64 has no finite value beyond it.
const maxExponent = 400

// parseNumber reads a decimal with optional currency symbol and thousands
// separators, e.g. "$1,234.56", "USD 40", "12.5%".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '+' && r != '.'
	})
	s = strings.TrimRight(numberNoise.Replace(s), ".")

	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}

	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return 0, false
	}

	f, _ := d.Float64()
	if !isFinite(f) {
		return 0, false
	}

	return f, true
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		return parseNumber(t.String())
	case float64:
		return t, isFinite(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		return parseNumber(t)
	}

	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
