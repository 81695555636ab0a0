package facade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/helios/internal/settings"
)

var ErrEmptyText = errors.New("text is empty")

var _ settings.Client = (*Settings)(nil)

type Verdict struct {
	IsScam bool   `json:"is_scam"`
	Reason string `json:"reason"`
}

// Fraud flags messages carrying common scam phrasing.
type Fraud struct {
	*caller
}

var scamIndicators = []string{
	"gift card",
	"wire transfer",
	"lottery",
	"you have won",
	"verify your account",
	"urgent action",
	"one-time password",
	"bank details",
	"crypto giveaway",
	"act now",
	"suspended",
}

func (f *Fraud) Analyze(ctx context.Context, text string) (Verdict, error) {
	if err := f.call(ctx, OpFraudAnalyze); err != nil {
		return Verdict{}, err
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Verdict{}, ErrEmptyText
	}

	var hits []string

	for _, ind := range scamIndicators {
		if strings.Contains(text, ind) {
			hits = append(hits, ind)
		}
	}

	if len(hits) == 0 {
		return Verdict{Reason: "No common scam indicators found."}, nil
	}

	return Verdict{
		IsScam: true,
		Reason: fmt.Sprintf("Message contains common scam indicators: %s.", strings.Join(hits, ", ")),
	}, nil
}

// Settings acknowledges saves after the usual delay. Nothing is stored server side.
type Settings struct {
	*caller
}

func (s *Settings) Save(ctx context.Context, _ settings.Settings) error {
	return s.call(ctx, OpSettingsSave)
}
