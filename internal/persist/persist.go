// Package persist is the durable storage port behind the client state stores.
// Each store owns one key and writes only the fields it partializes.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys partition durable storage between stores.
const (
	KeyAuth              = "helios-auth"
	KeyFinancialInsights = "helios-financial-insights"
	KeySettings          = "helios-settings"
	KeySessionToken      = "helios_auth_token"
)

// Storage is a key/value store for persisted client state.
// Get returns (nil, nil) when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Load decodes the value stored under key into dst.
// It reports false when nothing is stored.
func Load[T any](ctx context.Context, s Storage, key string, dst *T) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}

	if raw == nil {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}

	return true, nil
}

// Save encodes v as JSON and stores it under key.
func Save[T any](ctx context.Context, s Storage, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	return nil
}

// Purge wipes all persisted state. It is the recovery path for corrupted snapshots.
func Purge(ctx context.Context, s Storage) error {
	if err := s.Clear(ctx); err != nil {
		return fmt.Errorf("purging storage: %w", err)
	}

	return nil
}
