package report

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fallback chains, tried left to right. The canonical name always comes first
// so a normalized report normalizes to itself.
var (
	reportMarkers = []string{
		"executive_summary", "client_profile", "client_information", "client_info",
		"client_name", "account_holder",
	}

	clientProfileKeys  = []string{"client_profile", "client_information", "client_info", "client"}
	clientNameKeys     = []string{"name", "client_name", "account_holder", "full_name"}
	addressKeys        = []string{"address", "client_address", "mailing_address"}
	accountNumberKeys  = []string{"account_number", "account_number_mask", "account_no", "account"}
	analysisPeriodKeys = []string{"analysis_period", "statement_period", "period"}
	accountSummaryKeys = []string{"account_summary", "account_details"}

	executiveSummaryKeys = []string{"executive_summary", "summary", "overview"}

	analysisKeys    = []string{"financial_analysis", "detailed_analysis", "analysis"}
	liquidityKeys   = []string{"liquidity_assessment", "liquidity", "liquidity_analysis"}
	cashFlowKeys    = []string{"cash_flow_dynamics", "cash_flow", "cash_flow_analysis"}
	costBenefitKeys = []string{"cost_benefit_analysis", "cost_analysis", "fees_and_interest"}

	statusKeys       = []string{"status", "liquidity_status", "assessment"}
	startBalanceKeys = []string{"start_balance", "opening_balance", "beginning_balance", "starting_balance"}
	endBalanceKeys   = []string{"end_balance", "closing_balance", "ending_balance", "final_balance"}
	insightKeys      = []string{"insight", "observation", "analysis", "comment"}

	creditsKeys    = []string{"total_credits", "total_inflows", "credits", "total_income", "total_deposits"}
	debitsKeys     = []string{"total_debits", "total_outflows", "debits", "total_expenses", "total_withdrawals"}
	netFlowKeys    = []string{"net_flow_observation", "observation", "insight", "net_flow"}
	feesKeys       = []string{"total_fees", "fees", "fees_paid", "bank_fees"}
	interestKeys   = []string{"interest_earned_period", "interest_earned", "interest"}
	interestYTDKey = []string{"interest_earned_ytd", "ytd_interest", "interest_ytd"}

	recommendationsKeys = []string{"strategic_recommendations", "recommendations", "action_items"}
	recCategoryKeys     = []string{"category", "priority", "area"}
	recActionKeys       = []string{"action", "recommendation", "title"}
	recDetailsKeys      = []string{"details", "rationale", "description"}

	observationListKeys = []string{"detailed_analysis", "observations", "key_observations"}
	obsCategoryKeys     = []string{"category", "area", "title"}
	obsTextKeys         = []string{"observation", "finding", "insight", "details", "text"}
)

// field names a numeric report field that may be left undetermined by the
// structured pass.
type field int

const (
	fieldStartBalance field = iota
	fieldEndBalance
	fieldTotalCredits
	fieldTotalDebits
	fieldTotalFees
	fieldInterestPeriod
	fieldInterestYTD
)

// facts holds the numeric fields determined so far.
type facts map[field]float64

// fill sets f unless it is already determined. It reports whether it wrote.
func (fs facts) fill(f field, v float64) bool {
	if _, ok := fs[f]; ok {
		return false
	}

	fs[f] = v

	return true
}

func (fs facts) has(f field) bool {
	_, ok := fs[f]
	return ok
}

func build(raw object) *Report {
	r := &Report{StrategicRecommendations: []Recommendation{}}
	nums := facts{}

	profile := firstObject(raw, clientProfileKeys...)
	summary := firstObject(profile, accountSummaryKeys...)

	r.ClientProfile = ClientProfile{
		Name:           firstString([]object{profile, raw}, clientNameKeys...),
		Address:        firstString([]object{profile, raw}, addressKeys...),
		AccountNumber:  firstString([]object{profile, summary, raw}, accountNumberKeys...),
		AnalysisPeriod: firstString([]object{profile, summary, raw}, analysisPeriodKeys...),
	}
	r.ExecutiveSummary = firstString([]object{raw}, executiveSummaryKeys...)

	analysis := firstObject(raw, analysisKeys...)
	health := firstObject(raw, "financial_health_assessment", "health_assessment")
	metrics := firstObject(raw, "key_metrics", "metrics")

	liquidity := firstObject(analysis, liquidityKeys...)
	if liquidity == nil {
		liquidity = firstObject(raw, liquidityKeys...)
	}

	cashFlow := firstObject(analysis, cashFlowKeys...)
	if cashFlow == nil {
		cashFlow = firstObject(raw, cashFlowKeys...)
	}

	costBenefit := firstObject(analysis, costBenefitKeys...)
	if costBenefit == nil {
		costBenefit = firstObject(raw, costBenefitKeys...)
	}

	r.FinancialAnalysis.Liquidity.Status = firstString([]object{liquidity, health}, statusKeys...)
	r.FinancialAnalysis.Liquidity.Insight = firstString([]object{liquidity}, insightKeys...)
	r.FinancialAnalysis.CashFlow.NetFlowObservation = firstString([]object{cashFlow}, netFlowKeys...)
	r.FinancialAnalysis.CostBenefit.Insight = firstString([]object{costBenefit}, insightKeys...)

	burn := firstObject(metrics, "burn_rate")
	costOfFunds := firstObject(metrics, "cost_of_funds")

	numberChains := []struct {
		field   field
		sources []object
		keys    []string
	}{
		{fieldStartBalance, []object{liquidity}, startBalanceKeys},
		{fieldEndBalance, []object{liquidity}, endBalanceKeys},
		{fieldTotalCredits, []object{cashFlow}, creditsKeys},
		{fieldTotalDebits, []object{cashFlow, burn}, debitsKeys},
		{fieldTotalFees, []object{costBenefit, costOfFunds}, feesKeys},
		{fieldInterestPeriod, []object{costBenefit, costOfFunds}, interestKeys},
		{fieldInterestYTD, []object{costBenefit}, interestYTDKey},
	}

	for _, c := range numberChains {
		if v, ok := firstNumber(c.sources, c.keys...); ok {
			nums.fill(c.field, v)
		}
	}

	extract(nums, observationsOf(raw, analysis), descriptionsOf(r))

	r.FinancialAnalysis.Liquidity.StartBalance = nums[fieldStartBalance]
	r.FinancialAnalysis.Liquidity.EndBalance = nums[fieldEndBalance]
	r.FinancialAnalysis.CashFlow.TotalCredits = nums[fieldTotalCredits]
	r.FinancialAnalysis.CashFlow.TotalDebits = nums[fieldTotalDebits]
	r.FinancialAnalysis.CostBenefit.TotalFees = nums[fieldTotalFees]
	r.FinancialAnalysis.CostBenefit.InterestEarnedPeriod = nums[fieldInterestPeriod]
	r.FinancialAnalysis.CostBenefit.InterestEarnedYTD = nums[fieldInterestYTD]

	r.StrategicRecommendations = recommendationsOf(raw)

	return r
}

func recommendationsOf(raw object) []Recommendation {
	recs := []Recommendation{}

	items, _ := firstValue([]object{raw}, recommendationsKeys...).([]any)
	for _, item := range items {
		var rec Recommendation

		switch v := item.(type) {
		case object:
			rec = Recommendation{
				Category: firstString([]object{v}, recCategoryKeys...),
				Action:   firstString([]object{v}, recActionKeys...),
				Details:  firstString([]object{v}, recDetailsKeys...),
			}
		case string:
			rec = Recommendation{Action: strings.TrimSpace(v)}
		}

		if rec == (Recommendation{}) {
			continue
		}

		recs = append(recs, rec)
	}

	return recs
}

// firstObject returns the first object-valued key of obj.
func firstObject(obj object, keys ...string) object {
	for _, k := range keys {
		if v, ok := obj[k].(object); ok {
			return v
		}
	}

	return nil
}

// firstValue returns the first non-nil value for keys, searching sources in order.
func firstValue(sources []object, keys ...string) any {
	for _, src := range sources {
		for _, k := range keys {
			if v, ok := src[k]; ok && v != nil {
				return v
			}
		}
	}

	return nil
}

// firstString returns the first non-blank textual value for keys. Numbers are
// rendered as text so numeric account numbers survive.
func firstString(sources []object, keys ...string) string {
	for _, src := range sources {
		for _, k := range keys {
			if s, ok := asString(src[k]); ok {
				return s
			}
		}
	}

	return ""
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		if !isFinite(t) {
			return "", false
		}

		return strconv.FormatFloat(t, 'f', -1, 64), true
	}

	return "", false
}

func firstNumber(sources []object, keys ...string) (float64, bool) {
	for _, src := range sources {
		for _, k := range keys {
			if n, ok := asNumber(src[k]); ok {
				return n, true
			}
		}
	}

	return 0, false
}
