package facade

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/helios/internal/encoding"
	"github.com/MrJamesThe3rd/helios/internal/facade/statement"
	"github.com/MrJamesThe3rd/helios/internal/matching"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

var ErrEmptyDocument = errors.New("document is empty")

// Documents imports bank statement CSVs into the ledger.
type Documents struct {
	*caller
	ledger     *transaction.Ledger
	categories *matching.Service
}

type StatementImport struct {
	Filename   string                    `json:"filename"`
	Profile    string                    `json:"profile"`
	Charset    encoding.Charset          `json:"charset"`
	Imported   []transaction.Transaction `json:"imported"`
	Duplicates int                       `json:"duplicates"`
}

// UploadStatement parses a CSV export and appends its rows to the ledger.
// Uncategorized rows get a category from the matching rules. Rows already
// present (same day, amount and description) are skipped.
func (d *Documents) UploadStatement(ctx context.Context, name string, r io.Reader) (*StatementImport, error) {
	if err := d.call(ctx, OpDocumentsUpload); err != nil {
		return nil, err
	}

	res, err := statement.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse statement %s: %w", name, err)
	}

	d.categorize(ctx, res.Rows)

	batch := d.ledger.ImportBatch(res.Rows)

	return &StatementImport{
		Filename:   name,
		Profile:    res.Profile,
		Charset:    res.Charset,
		Imported:   batch.Imported,
		Duplicates: len(batch.Duplicates),
	}, nil
}

func (d *Documents) categorize(ctx context.Context, rows []transaction.CreateParams) {
	for i := range rows {
		if rows[i].Category != statement.DefaultCategory {
			continue
		}

		category, err := d.categories.Suggest(ctx, rows[i].Description)
		if err != nil {
			slog.Warn("failed to suggest category", "description", rows[i].Description, "error", err)
			continue
		}

		if category != "" {
			rows[i].Category = category
		}
	}
}

// Expense turns an uploaded bill into a pending expense.
type Expense struct {
	*caller
	ledger *transaction.Ledger
}

var billTotal = regexp.MustCompile(`(?i)total\D{0,20}?(\d[\d.,]*\d)`)

// ProcessBill records the bill as a processing transaction. The amount is
// read from a "total" line when the bill is text, and left at zero otherwise.
func (e *Expense) ProcessBill(ctx context.Context, name string, content []byte) (transaction.Transaction, error) {
	if err := e.call(ctx, OpExpenseProcessBill); err != nil {
		return transaction.Transaction{}, err
	}

	if len(content) == 0 {
		return transaction.Transaction{}, ErrEmptyDocument
	}

	var cents int64
	if strings.HasPrefix(mimetype.Detect(content).String(), "text/") {
		cents = billAmount(string(content))
	}

	now := e.now()

	return e.ledger.Create(transaction.CreateParams{
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Amount:      -cents,
		Description: billDescription(name),
		Category:    "Bills",
		Status:      transaction.StatusProcessing,
	}), nil
}

func billDescription(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		return "Bill"
	}

	return "Bill: " + base
}

// billAmount returns the last "total" figure in cents. The rightmost
// separator is taken as the decimal point.
func billAmount(text string) int64 {
	matches := billTotal.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0
	}

	raw := matches[len(matches)-1][1]

	if i := strings.LastIndexAny(raw, ".,"); i >= 0 && len(raw)-i-1 == 2 {
		raw = strings.NewReplacer(".", "", ",", "").Replace(raw[:i]) + "." + raw[i+1:]
	} else {
		raw = strings.NewReplacer(".", "", ",", "").Replace(raw)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}

	return d.Shift(2).Round(0).IntPart()
}
