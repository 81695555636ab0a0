// Package export renders the transaction ledger as CSV, a plain-text digest
// and a zip bundle of both.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

type Request struct {
	Filter    transaction.Filter `json:"filter,omitempty"`
	Query     string             `json:"query,omitempty"`
	StartDate *time.Time         `json:"start_date,omitempty"`
	EndDate   *time.Time         `json:"end_date,omitempty"`
}

// Service exports the transactions a client returns.
type Service struct {
	transactions transaction.Client
}

func NewService(client transaction.Client) *Service {
	return &Service{transactions: client}
}

// Export returns the transactions matching req, newest first as listed by
// the client. Date bounds are inclusive.
func (s *Service) Export(ctx context.Context, req Request) ([]transaction.Transaction, error) {
	txs, err := s.transactions.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	f := req.Filter
	if f == "" {
		f = transaction.FilterAll
	}

	out := transaction.Apply(txs, f, req.Query)

	return inRange(out, req.StartDate, req.EndDate), nil
}

func inRange(txs []transaction.Transaction, start, end *time.Time) []transaction.Transaction {
	if start == nil && end == nil {
		return txs
	}

	out := txs[:0:0]

	for _, t := range txs {
		if start != nil && t.Date.Before(*start) {
			continue
		}

		if end != nil && t.Date.After(*end) {
			continue
		}

		out = append(out, t)
	}

	return out
}

// FormatAmount renders cents as a signed decimal with two places.
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

var csvHeader = []string{"id", "date", "description", "category", "amount", "status"}

func WriteCSV(w io.Writer, txs []transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		record := []string{
			t.ID,
			t.Date.Format(time.DateOnly),
			t.Description,
			t.Category,
			FormatAmount(t.Amount),
			string(t.Status),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Digest is a one-line-per-transaction summary followed by the totals.
func Digest(txs []transaction.Transaction) string {
	var sb strings.Builder

	for _, t := range txs {
		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n",
			t.Date.Format(time.DateOnly), t.Description, FormatAmount(t.Amount), t.Category)
	}

	sum := transaction.Summarize(txs)
	fmt.Fprintf(&sb, "\nIncome: %s | Expenses: %s | Net: %s\n",
		FormatAmount(sum.TotalIncome), FormatAmount(sum.TotalExpenses), FormatAmount(sum.NetBalance))

	return sb.String()
}

// WriteArchive writes a zip holding transactions.csv and summary.txt.
func WriteArchive(w io.Writer, txs []transaction.Transaction) error {
	zw := zip.NewWriter(w)

	f, err := zw.Create("transactions.csv")
	if err != nil {
		return fmt.Errorf("creating csv entry: %w", err)
	}

	if err := WriteCSV(f, txs); err != nil {
		return err
	}

	f, err = zw.Create("summary.txt")
	if err != nil {
		return fmt.Errorf("creating summary entry: %w", err)
	}

	if _, err := io.WriteString(f, Digest(txs)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return zw.Close()
}
