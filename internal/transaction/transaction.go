package transaction

import "time"

// Status represents the settlement state of a transaction.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
)

// Transaction is a signed money movement. Positive amounts are income.
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"` // Amount in cents
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      Status    `json:"status"`
}

func (t Transaction) IsIncome() bool  { return t.Amount > 0 }
func (t Transaction) IsExpense() bool { return t.Amount < 0 }

// Summary totals a transaction list. NetBalance is always TotalIncome - TotalExpenses.
type Summary struct {
	TotalIncome   int64 `json:"totalIncome"`
	TotalExpenses int64 `json:"totalExpenses"`
	NetBalance    int64 `json:"netBalance"`
}

func Summarize(txs []Transaction) Summary {
	var s Summary

	for _, t := range txs {
		switch {
		case t.IsIncome():
			s.TotalIncome += t.Amount
		case t.IsExpense():
			s.TotalExpenses -= t.Amount
		}
	}

	s.NetBalance = s.TotalIncome - s.TotalExpenses

	return s
}
