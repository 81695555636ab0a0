// Package matching suggests categories for imported transactions from
// learned description patterns.
package matching

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyRule = errors.New("pattern and category are required")

type Rule struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

// Repository finds the category of the longest pattern contained in a
// description, newest rule first on ties. FindMatch returns "" when nothing matches.
type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
	CreateRule(ctx context.Context, rule Rule) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category for description, or "" if no rule matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	return s.repo.FindMatch(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, rule Rule) error {
	rule.Pattern = strings.TrimSpace(rule.Pattern)
	rule.Category = strings.TrimSpace(rule.Category)

	if rule.Pattern == "" || rule.Category == "" {
		return ErrEmptyRule
	}

	return s.repo.CreateRule(ctx, rule)
}

// DefaultRules cover the merchants that show up in the demo data. SQL
// databases get the same set from the seed migration.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "uber", Category: "Transport"},
		{Pattern: "starbucks", Category: "Food & Drink"},
		{Pattern: "groceries", Category: "Food & Drink"},
		{Pattern: "salary", Category: "Income"},
		{Pattern: "freelance", Category: "Income"},
		{Pattern: "rent", Category: "Housing"},
		{Pattern: "amazon", Category: "Shopping"},
		{Pattern: "dividend", Category: "Investments"},
	}
}
