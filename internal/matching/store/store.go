package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/helios/internal/database"
	"github.com/MrJamesThe3rd/helios/internal/matching"
)

// Store keeps category rules in the category_rules table.
type Store struct {
	db     *sql.DB
	driver database.Driver
}

func New(db *sql.DB, driver database.Driver) *Store {
	return &Store{db: db, driver: driver}
}

func (s *Store) FindMatch(ctx context.Context, description string) (string, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE LOWER(` + s.driver.Placeholder(1) + `) LIKE '%' || LOWER(pattern) || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return category, nil
}

func (s *Store) CreateRule(ctx context.Context, rule matching.Rule) error {
	query := `
		INSERT INTO category_rules (pattern, category, created_at)
		VALUES (` + s.driver.Placeholder(1) + `, ` + s.driver.Placeholder(2) + `, CURRENT_TIMESTAMP)
	`

	if _, err := s.db.ExecContext(ctx, query, rule.Pattern, rule.Category); err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
