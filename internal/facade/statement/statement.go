// Package statement reads bank CSV exports into transaction params.
// The layout is detected by matching column headers against known profiles.
package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/helios/internal/encoding"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

// DefaultCategory is assigned to rows without a category column or value.
const DefaultCategory = "Uncategorized"

var ErrUnknownFormat = errors.New("no matching statement format found")

type Result struct {
	Profile string
	Charset enc.Charset
	Rows    []transaction.CreateParams
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	params, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, err
	}

	return &Result{Profile: profile.Name, Charset: charset, Rows: params}, nil
}

// sniffDelimiter picks ';' when it outnumbers ',' in the first few KB.
func sniffDelimiter(raw []byte) rune {
	head := raw[:min(len(raw), 4096)]
	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) index(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[strings.ToLower(name)]; ok {
		return i
	}

	return -1
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if cols.index(name) < 0 {
			return false
		}
	}

	return true
}

// parseRows skips rows without a parseable date or amount (footers, page
// markers) but rejects dated rows without a description.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	dateIdx := cols.index(p.DateCol)
	descIdx := cols.index(p.DescCol)
	catIdx := cols.index(p.CategoryCol)

	var params []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, dateIdx), p.DateLayouts)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		category := cellValue(row, catIdx)
		if category == "" {
			category = DefaultCategory
		}

		params = append(params, transaction.CreateParams{
			Date:        date,
			Amount:      amount,
			Description: desc,
			Category:    category,
			Status:      transaction.StatusCompleted,
		})
	}

	return params, nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// rowAmount returns signed cents. Zero amounts are skipped.
func rowAmount(p *Profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountSingle:
		return cellAmount(row, cols.index(p.AmountCol), p.Numbers)
	case amountSplit:
		if cents, ok := cellAmount(row, cols.index(p.DebitCol), p.Numbers); ok {
			return -abs(cents), true
		}

		if cents, ok := cellAmount(row, cols.index(p.CreditCol), p.Numbers); ok {
			return abs(cents), true
		}
	}

	return 0, false
}

func cellAmount(row []string, idx int, style numberStyle) (int64, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	cents, err := parseAmount(s, style)
	if err != nil || cents == 0 {
		return 0, false
	}

	return cents, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
