// Package report turns loosely shaped advisory payloads from the upstream AI
// service into the strict Report shape the client renders.
//
// Normalization runs in two isolated layers. The structured layer recognizes
// a closed set of raw report layouts and walks fixed fallback chains of field
// names. The heuristic layer only runs for numeric fields the structured layer
// left undetermined and pulls them out of free-text observations.
package report

import "errors"

// ErrNoReport is returned when a payload cannot be unwrapped or holds nothing
// that looks like a report.
var ErrNoReport = errors.New("no advisory report in payload")

// Report is the normalized financial advisory report.
// Every numeric field is finite and StrategicRecommendations is never nil.
type Report struct {
	ClientProfile            ClientProfile    `json:"client_profile"`
	ExecutiveSummary         string           `json:"executive_summary"`
	FinancialAnalysis        Analysis         `json:"financial_analysis"`
	StrategicRecommendations []Recommendation `json:"strategic_recommendations"`
}

type ClientProfile struct {
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	AccountNumber  string `json:"account_number"`
	AnalysisPeriod string `json:"analysis_period"`
}

type Analysis struct {
	Liquidity   Liquidity   `json:"liquidity_assessment"`
	CashFlow    CashFlow    `json:"cash_flow_dynamics"`
	CostBenefit CostBenefit `json:"cost_benefit_analysis"`
}

type Liquidity struct {
	Status       string  `json:"status"`
	StartBalance float64 `json:"start_balance"`
	EndBalance   float64 `json:"end_balance"`
	Insight      string  `json:"insight"`
}

type CashFlow struct {
	TotalCredits       float64 `json:"total_credits"`
	TotalDebits        float64 `json:"total_debits"`
	NetFlowObservation string  `json:"net_flow_observation"`
}

type CostBenefit struct {
	TotalFees            float64 `json:"total_fees"`
	InterestEarnedPeriod float64 `json:"interest_earned_period"`
	InterestEarnedYTD    float64 `json:"interest_earned_ytd"`
	Insight              string  `json:"insight"`
}

type Recommendation struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Details  string `json:"details"`
}

// Clone returns a deep copy of r.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}

	c := *r
	c.StrategicRecommendations = append([]Recommendation{}, r.StrategicRecommendations...)

	return &c
}
