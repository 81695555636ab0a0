// Package advisory turns an uploaded bank statement into a financial advisory
// report and keeps the last report across restarts.
package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// MaxStatementSize is the largest statement accepted for analysis.
const MaxStatementSize = 10 << 20

// MsgUnparseable is shown when the analysis came back but no report could be read from it.
const MsgUnparseable = "Could not parse the advisory report. Please try another statement."

var ErrInvalidStatement = errors.New("invalid statement")

var acceptedTypes = []string{"application/pdf", "image/png", "image/jpeg"}

type Statement struct {
	Name    string
	Content []byte
}

// Validate checks the statement's detected content type and size. The type
// comes from the content, not from the file name.
func Validate(st Statement) error {
	if mtype := mimetype.Detect(st.Content); !mimetype.EqualsAny(mtype.String(), acceptedTypes...) {
		return fmt.Errorf("%w: Please upload a PDF or image file (PNG, JPG)", ErrInvalidStatement)
	}

	if len(st.Content) > MaxStatementSize {
		return fmt.Errorf("%w: File size must be less than 10MB", ErrInvalidStatement)
	}

	return nil
}

//go:generate mockgen -source=advisory.go -destination=client_mock.go -package=advisory
type Client interface {
	// Analyze returns the raw analysis payload for the statement.
	Analyze(ctx context.Context, st Statement) (json.RawMessage, error)
}
