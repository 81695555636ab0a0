package transaction

import (
	"fmt"
	"strings"
)

type Filter string

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
	FilterPending Filter = "pending"
)

var Filters = []Filter{FilterAll, FilterIncome, FilterExpense, FilterPending}

func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown filter %q", s)
}

func (f Filter) Match(t Transaction) bool {
	switch f {
	case FilterIncome:
		return t.IsIncome()
	case FilterExpense:
		return t.IsExpense()
	case FilterPending:
		return t.Status == StatusProcessing
	}

	return true
}

// MatchQuery is a case-insensitive substring match on description, category and id.
// An empty query matches everything.
func MatchQuery(t Transaction, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, field := range []string{t.Description, t.Category, t.ID} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}

	return false
}

// Apply filters then searches. The input is not modified.
func Apply(txs []Transaction, f Filter, query string) []Transaction {
	out := make([]Transaction, 0, len(txs))

	for _, t := range txs {
		if f.Match(t) && MatchQuery(t, query) {
			out = append(out, t)
		}
	}

	return out
}
