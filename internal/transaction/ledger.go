package transaction

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger is an in-memory transaction book. It is safe for concurrent use.
type Ledger struct {
	mu  sync.RWMutex
	txs []Transaction
}

func NewLedger(seed []Transaction) *Ledger {
	return &Ledger{txs: slices.Clone(seed)}
}

type CreateParams struct {
	Date        time.Time
	Amount      int64
	Description string
	Category    string
	Status      Status
}

// List returns the transactions newest first.
func (l *Ledger) List() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := slices.Clone(l.txs)
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return cmp.Compare(b.Date.Unix(), a.Date.Unix())
	})

	return out
}

func (l *Ledger) Create(params CreateParams) Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := newTransaction(params)
	l.txs = append(l.txs, tx)

	return tx
}

type ImportResult struct {
	Imported   []Transaction
	Duplicates []CreateParams
}

type dupKey struct {
	Date        string
	Amount      int64
	Description string
}

func keyOf(date time.Time, amount int64, description string) dupKey {
	return dupKey{Date: date.Format(time.DateOnly), Amount: amount, Description: description}
}

// ImportBatch adds params, skipping rows that match an existing transaction
// on date, amount and description.
func (l *Ledger) ImportBatch(params []CreateParams) ImportResult {
	if len(params) == 0 {
		return ImportResult{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lookup := make(map[dupKey]struct{}, len(l.txs))
	for _, t := range l.txs {
		lookup[keyOf(t.Date, t.Amount, t.Description)] = struct{}{}
	}

	var result ImportResult

	for _, p := range params {
		k := keyOf(p.Date, p.Amount, p.Description)
		if _, found := lookup[k]; found {
			result.Duplicates = append(result.Duplicates, p)
			continue
		}

		tx := newTransaction(p)
		l.txs = append(l.txs, tx)
		lookup[k] = struct{}{}
		result.Imported = append(result.Imported, tx)
	}

	return result
}

func newTransaction(p CreateParams) Transaction {
	status := p.Status
	if status == "" {
		status = StatusCompleted
	}

	return Transaction{
		ID:          uuid.NewString(),
		Date:        p.Date,
		Amount:      p.Amount,
		Description: p.Description,
		Category:    p.Category,
		Status:      status,
	}
}
