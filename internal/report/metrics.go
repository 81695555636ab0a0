package report

import "strings"

// Metrics are the headline figures derived from a report for the overview screen.
type Metrics struct {
	NetCashFlow   float64 `json:"net_cash_flow"`
	SavingsRate   float64 `json:"savings_rate"` // percent of credits kept
	BurnRate      float64 `json:"burn_rate"`    // percent of credits spent
	BalanceChange float64 `json:"balance_change"`
	GrowthPercent float64 `json:"growth_percent"`
}

// Derive computes Metrics. Ratios with a zero divisor are 0, never Inf or NaN.
func Derive(r *Report) Metrics {
	if r == nil {
		return Metrics{}
	}

	credits := r.FinancialAnalysis.CashFlow.TotalCredits
	debits := r.FinancialAnalysis.CashFlow.TotalDebits
	start := r.FinancialAnalysis.Liquidity.StartBalance
	end := r.FinancialAnalysis.Liquidity.EndBalance

	m := Metrics{
		NetCashFlow:   credits - debits,
		BalanceChange: end - start,
	}

	if credits > 0 {
		m.SavingsRate = m.NetCashFlow / credits * 100
		m.BurnRate = debits / credits * 100
	}

	if start != 0 {
		m.GrowthPercent = (end/start - 1) * 100
	}

	return m
}

// Tone classifies a free-text liquidity status.
type Tone string

const (
	TonePositive   Tone = "positive"
	ToneRecovering Tone = "recovering"
	ToneCritical   Tone = "critical"
	ToneNeutral    Tone = "neutral"
)

var toneKeywords = []struct {
	tone  Tone
	words []string
}{
	{TonePositive, []string{"positive", "healthy", "strong"}},
	{ToneRecovering, []string{"recovering", "improving"}},
	{ToneCritical, []string{"critical", "low", "negative"}},
}

func ClassifyLiquidity(status string) Tone {
	s := strings.ToLower(status)

	for _, tk := range toneKeywords {
		for _, w := range tk.words {
			if strings.Contains(s, w) {
				return tk.tone
			}
		}
	}

	return ToneNeutral
}
