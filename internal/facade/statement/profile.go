package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with value "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// numberStyle is the thousands/decimal separator convention of an export.
type numberStyle int

const (
	numbersEuropean numberStyle = iota // 1.234,56
	numbersUS                          // 1,234.56
)

// Profile describes the column layout of a bank CSV export. Column names are
// matched case-insensitively after trimming.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	CategoryCol string // optional
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
	DateLayouts []string
	Numbers     numberStyle
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

var (
	europeanDates = []string{"02-01-2006", "02/01/2006"}
	usDates       = []string{"2006-01-02", "01/02/2006", "Jan 2, 2006"}
)

// profiles is the ordered list of formats tried during detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:        "cgd-cartao",
		DateCol:     "Data",
		DescCol:     "Descrição",
		AmountMode:  amountSplit,
		DebitCol:    "Débito",
		CreditCol:   "Crédito",
		DateLayouts: europeanDates,
		Numbers:     numbersEuropean,
	},
	{
		Name:        "cgd-extrato",
		DateCol:     "Data mov.",
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Movimento",
		DateLayouts: europeanDates,
		Numbers:     numbersEuropean,
	},
	{
		Name:        "cgd-conta",
		DateCol:     "Data mov.",
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Montante",
		DateLayouts: europeanDates,
		Numbers:     numbersEuropean,
	},
	{
		Name:        "debit-credit",
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSplit,
		DebitCol:    "Debit",
		CreditCol:   "Credit",
		DateLayouts: usDates,
		Numbers:     numbersUS,
	},
	{
		Name:        "signed",
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSingle,
		AmountCol:   "Amount",
		DateLayouts: usDates,
		Numbers:     numbersUS,
	},
}
