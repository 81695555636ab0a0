package report_test

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/helios/internal/report"
)

const fixturePayload = "{\"answer\": \"```json\\n{\\\"financial_advisory_report\\\": {\\\"client_profile\\\": {\\\"name\\\":\\\"Jane Doe\\\",\\\"account_number\\\":\\\"1234\\\"}, \\\"executive_summary\\\":\\\"ok\\\", \\\"financial_analysis\\\": {\\\"cash_flow_dynamics\\\": {\\\"total_credits\\\":1000, \\\"total_debits\\\":400}}}}\\n```\"}"

func TestNormalize_FencedAnswerFixture(t *testing.T) {
	got, err := report.Normalize([]byte(fixturePayload))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", got.ClientProfile.Name)
	assert.Equal(t, "1234", got.ClientProfile.AccountNumber)
	assert.Equal(t, "ok", got.ExecutiveSummary)
	assert.Equal(t, 1000.0, got.FinancialAnalysis.CashFlow.TotalCredits)
	assert.Equal(t, 400.0, got.FinancialAnalysis.CashFlow.TotalDebits)
	assert.Equal(t, []report.Recommendation{}, got.StrategicRecommendations)
	assert.Zero(t, got.FinancialAnalysis.Liquidity.StartBalance)
	assert.Zero(t, got.FinancialAnalysis.CostBenefit.TotalFees)
}

func TestNormalize_IsPureAndIdempotent(t *testing.T) {
	payload := []byte(`{
		"financial_advisory": {
			"client_information": {"client_name": "Sam Roe", "account_summary": {"account_number_mask": "XXXX-9876", "statement_period": "Jan 2024"}},
			"summary": "Spending is under control.",
			"detailed_analysis": [
				{"category": "Balance Trend", "observation": "Balance grew from $12,500.00 to $14,250.75 over the period."},
				{"category": "Fees", "observation": "Bank fees of $35 were charged."}
			],
			"recommendations": [{"priority": "High", "recommendation": "Build an emergency fund", "rationale": "Three months of expenses"}]
		}
	}`)

	first, err := report.Normalize(payload)
	require.NoError(t, err)

	second, err := report.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	rewrapped, err := json.Marshal(map[string]any{"financial_advisory_report": first})
	require.NoError(t, err)

	third, err := report.Normalize(rewrapped)
	require.NoError(t, err)
	assert.Equal(t, first, third)

	assert.Equal(t, "Sam Roe", first.ClientProfile.Name)
	assert.Equal(t, "XXXX-9876", first.ClientProfile.AccountNumber)
	assert.Equal(t, "Jan 2024", first.ClientProfile.AnalysisPeriod)
	assert.Equal(t, 12500.0, first.FinancialAnalysis.Liquidity.StartBalance)
	assert.Equal(t, 14250.75, first.FinancialAnalysis.Liquidity.EndBalance)
	assert.Equal(t, 35.0, first.FinancialAnalysis.CostBenefit.TotalFees)
	assert.Equal(t, []report.Recommendation{{
		Category: "High",
		Action:   "Build an emergency fund",
		Details:  "Three months of expenses",
	}}, first.StrategicRecommendations)
}

func TestNormalize_PatternPriority(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		text      string
		wantStart float64
		wantEnd   float64
	}{
		{
			name:      "RangeBeatsEndingBalance",
			category:  "Liquidity",
			text:      "Balance moved from $1,000 to $2,500 and the ending balance was reported as $9,999.",
			wantStart: 1000,
			wantEnd:   2500,
		},
		{
			name:     "EndingBalance",
			category: "Liquidity",
			text:     "The ending balance stood at $3,210.50.",
			wantEnd:  3210.5,
		},
		{
			name:      "BeginningBalance",
			category:  "Liquidity",
			text:      "Beginning balance of 4,000.",
			wantStart: 4000,
		},
		{
			name:      "WasAtGatedByCategory",
			category:  "Account Balance",
			text:      "The balance was $7,100 on the first day.",
			wantStart: 7100,
		},
		{
			name:     "WasAtIgnoredWithoutBalanceCategory",
			category: "Liquidity",
			text:     "The balance was $7,100 on the first day.",
		},
		{
			name:     "BalanceTo",
			category: "Liquidity",
			text:     "Salary lifted the balance to $8,800.",
			wantEnd:  8800,
		},
		{
			name:      "BeginningAndEndingCombine",
			category:  "Liquidity",
			text:      "Beginning balance $100, ending balance $250.",
			wantStart: 100,
			wantEnd:   250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(map[string]any{
				"financial_advisory_report": map[string]any{
					"executive_summary": "summary",
					"detailed_analysis": []any{
						map[string]any{"category": tt.category, "observation": tt.text},
					},
				},
			})
			require.NoError(t, err)

			got, err := report.Normalize(payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.FinancialAnalysis.Liquidity.StartBalance)
			assert.Equal(t, tt.wantEnd, got.FinancialAnalysis.Liquidity.EndBalance)
		})
	}
}

func TestNormalize_StructuredBeatsHeuristics(t *testing.T) {
	payload := []byte(`{"financial_advisory_report": {
		"executive_summary": "x",
		"financial_analysis": {"liquidity_assessment": {"status": "Healthy", "start_balance": "1,500.25"}},
		"detailed_analysis": [{"category": "Balance", "observation": "Balance went from 1 to 2."}]
	}}`)

	got, err := report.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, 1500.25, got.FinancialAnalysis.Liquidity.StartBalance)
	assert.Equal(t, 2.0, got.FinancialAnalysis.Liquidity.EndBalance)
	assert.Equal(t, "Healthy", got.FinancialAnalysis.Liquidity.Status)
}

func TestNormalize_DescriptionFallback(t *testing.T) {
	payload := []byte(`{"executive_summary": "Your funds moved from $2,000 to $2,600 this month.", "client_name": "Ana"}`)

	got, err := report.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.ClientProfile.Name)
	assert.Equal(t, 2000.0, got.FinancialAnalysis.Liquidity.StartBalance)
	assert.Equal(t, 2600.0, got.FinancialAnalysis.Liquidity.EndBalance)
}

func TestNormalize_LegacyKeyMetrics(t *testing.T) {
	payload := []byte(`{"advisory_report": {
		"client_profile": {"name": "Lee", "address": "1 Main St", "account_summary": {"account_number_mask": "****1111", "statement_period": "Q1"}},
		"financial_health_assessment": {"liquidity_status": "Stable"},
		"key_metrics": {
			"burn_rate": {"total_outflows": 900.5, "insight": "ok"},
			"cost_of_funds": {"fees_paid": 12, "interest_earned": 3.25, "insight": "ok"}
		},
		"strategic_recommendations": ["Cancel unused subscriptions", "  "]
	}}`)

	got, err := report.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", got.ClientProfile.Address)
	assert.Equal(t, "****1111", got.ClientProfile.AccountNumber)
	assert.Equal(t, "Q1", got.ClientProfile.AnalysisPeriod)
	assert.Equal(t, "Stable", got.FinancialAnalysis.Liquidity.Status)
	assert.Equal(t, 900.5, got.FinancialAnalysis.CashFlow.TotalDebits)
	assert.Equal(t, 12.0, got.FinancialAnalysis.CostBenefit.TotalFees)
	assert.Equal(t, 3.25, got.FinancialAnalysis.CostBenefit.InterestEarnedPeriod)
	assert.Equal(t, []report.Recommendation{{Action: "Cancel unused subscriptions"}}, got.StrategicRecommendations)
}

func TestNormalize_Unwrap(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "FenceWithTag", payload: "{\"answer\": \"```json\\n{\\\"executive_summary\\\": \\\"a\\\"}\\n```\"}"},
		{name: "FenceWithoutTag", payload: "{\"answer\": \"```\\n{\\\"executive_summary\\\": \\\"a\\\"}\\n```\"}"},
		{name: "FenceWithProse", payload: "{\"answer\": \"Here you go:\\n```json\\n{\\\"executive_summary\\\": \\\"a\\\"}\\n```\\nThanks.\"}"},
		{name: "UnclosedFence", payload: "{\"answer\": \"```json\\n{\\\"executive_summary\\\": \\\"a\\\"}\"}"},
		{name: "BareJSONAnswer", payload: `{"answer": "{\"executive_summary\": \"a\"}"}`},
		{name: "MarkdownWithoutEnvelope", payload: "```json\n{\"executive_summary\": \"a\"}\n```"},
		{name: "PlainObject", payload: `{"executive_summary": "a"}`},
		{name: "InvalidJSONInFence", payload: "{\"answer\": \"```json\\n{not json}\\n```\"}", wantErr: true},
		{name: "ProseOnly", payload: `{"answer": "I could not analyze this statement."}`, wantErr: true},
		{name: "Empty", payload: "   ", wantErr: true},
		{name: "NotAnObject", payload: `[1, 2, 3]`, wantErr: true},
		{name: "UnrelatedObject", payload: `{"status": "ok"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := report.Normalize([]byte(tt.payload))

			if tt.wantErr {
				assert.ErrorIs(t, err, report.ErrNoReport)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "a", got.ExecutiveSummary)
		})
	}
}

func TestNormalize_EnvelopePriority(t *testing.T) {
	payload := []byte(`{
		"financial_advisory": {"executive_summary": "second"},
		"data": {"financial_advisory_report": {"executive_summary": "first"}},
		"executive_summary": "flat"
	}`)

	got, err := report.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, "first", got.ExecutiveSummary)
}

func TestNormalizeValue_NonFiniteNumbers(t *testing.T) {
	got, err := report.NormalizeValue(map[string]any{
		"executive_summary": "x",
		"financial_analysis": map[string]any{
			"liquidity_assessment": map[string]any{"start_balance": math.NaN(), "end_balance": math.Inf(1)},
			"cash_flow_dynamics":   map[string]any{"total_credits": "NaN", "total_debits": "Infinity"},
		},
	})
	require.NoError(t, err)
	assertFinite(t, got)
	assert.Zero(t, got.FinancialAnalysis.Liquidity.StartBalance)
	assert.Zero(t, got.FinancialAnalysis.CashFlow.TotalDebits)
}

func TestNormalize_ExtremeExponents(t *testing.T) {
	payload := []byte(`{"financial_advisory_report": {
		"executive_summary": "x",
		"financial_analysis": {
			"liquidity_assessment": {"start_balance": 1e900000000, "end_balance": -1e-900000000},
			"cash_flow_dynamics": {"total_credits": "1e999999999", "total_debits": 1e300}
		}
	}}`)

	got, err := report.Normalize(payload)
	require.NoError(t, err)
	assertFinite(t, got)

	assert.Zero(t, got.FinancialAnalysis.Liquidity.StartBalance)
	assert.Zero(t, got.FinancialAnalysis.Liquidity.EndBalance)
	assert.Zero(t, got.FinancialAnalysis.CashFlow.TotalCredits)
	assert.Equal(t, 1e300, got.FinancialAnalysis.CashFlow.TotalDebits)
}

func TestNormalize_NumericSafetyOverGeneratedInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		payload, err := json.Marshal(map[string]any{
			"financial_advisory_report": randomReport(rng),
		})
		require.NoError(t, err)

		got, err := report.Normalize(payload)
		if err != nil {
			assert.True(t, errors.Is(err, report.ErrNoReport))
			continue
		}

		assertFinite(t, got)
		assert.NotNil(t, got.StrategicRecommendations)
	}
}

func FuzzNormalize(f *testing.F) {
	f.Add([]byte(fixturePayload))
	f.Add([]byte(`{"executive_summary": "Balance from 1 to 2", "detailed_analysis": [{"category": "Balance", "observation": "balance was at 1e999"}]}`))
	f.Add([]byte("```json\n{\"client_name\": 5}\n```"))

	f.Fuzz(func(t *testing.T, payload []byte) {
		got, err := report.Normalize(payload)
		if err != nil {
			if !errors.Is(err, report.ErrNoReport) {
				t.Fatalf("unexpected error kind: %v", err)
			}

			return
		}

		assertFinite(t, got)
	})
}

func assertFinite(t *testing.T, r *report.Report) {
	t.Helper()

	for _, v := range []float64{
		r.FinancialAnalysis.Liquidity.StartBalance,
		r.FinancialAnalysis.Liquidity.EndBalance,
		r.FinancialAnalysis.CashFlow.TotalCredits,
		r.FinancialAnalysis.CashFlow.TotalDebits,
		r.FinancialAnalysis.CostBenefit.TotalFees,
		r.FinancialAnalysis.CostBenefit.InterestEarnedPeriod,
		r.FinancialAnalysis.CostBenefit.InterestEarnedYTD,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite number in report: %v", v)
		}
	}

	if r.StrategicRecommendations == nil {
		t.Fatal("nil recommendations")
	}
}

func randomScalar(rng *rand.Rand) any {
	switch rng.IntN(10) {
	case 0:
		return nil
	case 1:
		return rng.Float64() * 1e6
	case 2:
		return "$1,234.56"
	case 3:
		return "NaN"
	case 4:
		return "not a number"
	case 5:
		return true
	case 6:
		return []any{"x", 1}
	case 7:
		return json.Number("1e900000000")
	case 8:
		return "-1e-900000000"
	default:
		return map[string]any{"nested": rng.IntN(10)}
	}
}

func randomReport(rng *rand.Rand) map[string]any {
	out := map[string]any{}

	maybe := func(m map[string]any, key string, v func() any) {
		if rng.IntN(2) == 0 {
			m[key] = v()
		}
	}

	maybe(out, "executive_summary", func() any { return "from 1,000 to 2,000" })
	maybe(out, "client_profile", func() any {
		p := map[string]any{}
		maybe(p, "name", func() any { return randomScalar(rng) })
		maybe(p, "account_number", func() any { return randomScalar(rng) })

		return p
	})
	maybe(out, "financial_analysis", func() any {
		a := map[string]any{}
		maybe(a, "liquidity_assessment", func() any {
			return map[string]any{"start_balance": randomScalar(rng), "end_balance": randomScalar(rng)}
		})
		maybe(a, "cash_flow_dynamics", func() any {
			return map[string]any{"total_credits": randomScalar(rng), "total_debits": randomScalar(rng)}
		})
		maybe(a, "cost_benefit_analysis", func() any { return randomScalar(rng) })

		return a
	})
	maybe(out, "detailed_analysis", func() any {
		return []any{
			map[string]any{"category": "Balance", "observation": "balance was at 99999999999999999999999"},
			randomScalar(rng),
		}
	})
	maybe(out, "strategic_recommendations", func() any { return randomScalar(rng) })

	return out
}

func TestDerive(t *testing.T) {
	r := &report.Report{FinancialAnalysis: report.Analysis{
		Liquidity: report.Liquidity{StartBalance: 1000, EndBalance: 1250},
		CashFlow:  report.CashFlow{TotalCredits: 2000, TotalDebits: 1500},
	}}

	m := report.Derive(r)
	assert.Equal(t, 500.0, m.NetCashFlow)
	assert.Equal(t, 25.0, m.SavingsRate)
	assert.Equal(t, 75.0, m.BurnRate)
	assert.Equal(t, 250.0, m.BalanceChange)
	assert.InDelta(t, 25.0, m.GrowthPercent, 1e-9)

	assert.Equal(t, report.Metrics{}, report.Derive(&report.Report{}))
	assert.Equal(t, report.Metrics{}, report.Derive(nil))
}

func TestClassifyLiquidity(t *testing.T) {
	assert.Equal(t, report.TonePositive, report.ClassifyLiquidity("Healthy surplus"))
	assert.Equal(t, report.ToneRecovering, report.ClassifyLiquidity("Improving"))
	assert.Equal(t, report.ToneCritical, report.ClassifyLiquidity("LOW cash reserves"))
	assert.Equal(t, report.ToneNeutral, report.ClassifyLiquidity("Stable"))
}
