package statement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts in cents fit int64 well within this exponent range.
const maxExponent = 18

var currencyNoise = strings.NewReplacer("$", "", "€", "", "EUR", "", "USD", "", " ", "", "\u00a0", "")

// parseAmount parses a formatted amount into signed cents.
// "1.234,56" (European) and "1,234.56" (US) both give 123456; "(12.00)" is negative.
func parseAmount(s string, style numberStyle) (int64, error) {
	clean := currencyNoise.Replace(strings.TrimSpace(s))

	negative := strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")")
	clean = strings.Trim(clean, "()")

	switch style {
	case numbersEuropean:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case numbersUS:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return 0, fmt.Errorf("amount %q out of range", s)
	}

	if negative {
		d = d.Neg()
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
