package report

import (
	"regexp"
	"strings"
)

// Heuristic extraction of numeric facts from free text. Only fields the
// structured pass left undetermined are written, and for each field the first
// rule that matches wins.

const num = `\$?\s*(-?\d{1,3}(?:,\d{3})+(?:\.\d+)?|-?\d+(?:\.\d+)?)`

var (
	reRange      = regexp.MustCompile(`(?i)` + num + `\s+to\s+` + num)
	reEnding     = regexp.MustCompile(`(?i)(?:ending|closing)\s+balance[^\d$]{0,40}?` + num)
	reBeginning  = regexp.MustCompile(`(?i)(?:beginning|opening|starting)\s+balance[^\d$]{0,40}?` + num)
	reWasAt      = regexp.MustCompile(`(?i)balance[^\d$]{0,40}?\b(?:was|at)\b[^\d$]{0,20}?` + num)
	reBalanceTo  = regexp.MustCompile(`(?i)balance\s+to\s+` + num)
	reCredits    = regexp.MustCompile(`(?i)(?:credits|inflows|deposits)[^\d$]{0,30}?` + num)
	reDebits     = regexp.MustCompile(`(?i)(?:debits|outflows|withdrawals)[^\d$]{0,30}?` + num)
	reFees       = regexp.MustCompile(`(?i)\bfees?\b[^\d$]{0,30}?` + num)
	reInterest   = regexp.MustCompile(`(?i)interest\s+(?:earned|credited|income|of)[^\d$]{0,30}?` + num)
	reInterestYT = regexp.MustCompile(`(?i)(?:ytd|year[- ]to[- ]date)\s+interest[^\d$]{0,30}?` + num)
)

type observation struct {
	category string
	text     string
}

func (o observation) mentionsBalance() bool {
	return containsFold(o.category, "balance") || containsFold(o.text, "balance")
}

func categoryMentionsBalance(o observation) bool {
	return containsFold(o.category, "balance")
}

// rule maps the capture groups of re onto fields, in order.
type rule struct {
	re     *regexp.Regexp
	gate   func(observation) bool
	fields []field
}

// balanceRules run over observations that mention a balance.
var balanceRules = []rule{
	{re: reRange, fields: []field{fieldStartBalance, fieldEndBalance}},
	{re: reEnding, fields: []field{fieldEndBalance}},
	{re: reBeginning, fields: []field{fieldStartBalance}},
	{re: reWasAt, gate: categoryMentionsBalance, fields: []field{fieldStartBalance}},
	{re: reBalanceTo, fields: []field{fieldEndBalance}},
}

// descriptionRule is the last resort for balances, applied to free-text
// description fields rather than observations.
var descriptionRule = rule{re: reRange, fields: []field{fieldStartBalance, fieldEndBalance}}

// flowRules run over every observation and description.
var flowRules = []rule{
	{re: reCredits, fields: []field{fieldTotalCredits}},
	{re: reDebits, fields: []field{fieldTotalDebits}},
	{re: reInterestYT, fields: []field{fieldInterestYTD}},
	{re: reInterest, fields: []field{fieldInterestPeriod}},
	{re: reFees, fields: []field{fieldTotalFees}},
}

func extract(nums facts, observations []observation, descriptions []string) {
	var balanceObs []observation

	for _, o := range observations {
		if o.mentionsBalance() {
			balanceObs = append(balanceObs, o)
		}
	}

	for _, r := range balanceRules {
		for _, o := range balanceObs {
			if r.gate != nil && !r.gate(o) {
				continue
			}

			if r.apply(nums, o.text) {
				break
			}
		}
	}

	for _, d := range descriptions {
		if descriptionRule.apply(nums, d) {
			break
		}
	}

	texts := make([]string, 0, len(observations)+len(descriptions))
	for _, o := range observations {
		texts = append(texts, o.text)
	}

	texts = append(texts, descriptions...)

	for _, r := range flowRules {
		for _, t := range texts {
			if r.apply(nums, t) {
				break
			}
		}
	}
}

// apply matches text and fills the rule's undetermined fields. It reports
// whether the rule is settled, meaning none of its fields remain open.
func (r rule) apply(nums facts, text string) bool {
	if r.settled(nums) {
		return true
	}

	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return false
	}

	for i, f := range r.fields {
		if v, ok := parseNumber(m[i+1]); ok {
			nums.fill(f, v)
		}
	}

	return r.settled(nums)
}

func (r rule) settled(nums facts) bool {
	for _, f := range r.fields {
		if !nums.has(f) {
			return false
		}
	}

	return true
}

func observationsOf(raw, analysis object) []observation {
	var out []observation

	for _, src := range []object{raw, analysis} {
		for _, k := range observationListKeys {
			items, ok := src[k].([]any)
			if !ok {
				continue
			}

			for _, item := range items {
				switch v := item.(type) {
				case object:
					text := firstString([]object{v}, obsTextKeys...)
					if text == "" {
						continue
					}

					out = append(out, observation{
						category: firstString([]object{v}, obsCategoryKeys...),
						text:     text,
					})
				case string:
					if s := strings.TrimSpace(v); s != "" {
						out = append(out, observation{text: s})
					}
				}
			}
		}
	}

	return out
}

// descriptionsOf lists the free-text fields consulted by the last-resort rule.
func descriptionsOf(r *Report) []string {
	var out []string

	for _, s := range []string{
		r.FinancialAnalysis.Liquidity.Insight,
		r.FinancialAnalysis.CashFlow.NetFlowObservation,
		r.ExecutiveSummary,
	} {
		if s != "" {
			out = append(out, s)
		}
	}

	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
