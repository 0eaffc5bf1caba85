package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/coachplan/internal/kv"
)

// storageKey is the key-value entry holding the serialized rule collection.
const storageKey = "coachplan.rules"

// ErrRuleNotFound is returned by Update and Delete for unknown identifiers.
var ErrRuleNotFound = errors.New("rules: rule not found")

// Store persists the rule collection as one JSON array in a key-value store.
// Persistence failures are logged and swallowed so a broken store never
// blocks editing; concurrent writers can lose updates, which mirrors the
// single-editor assumption of the rest of the planner.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
}

// NewStore creates a rule store over the given key-value store.
func NewStore(kvStore kv.Store, logger *slog.Logger) *Store {
	return &Store{kv: kvStore, logger: logger}
}

// List returns the stored rules in store order. The default rule set is
// materialized and saved on first read. Malformed stored data is logged and
// treated as an empty collection.
func (s *Store) List(ctx context.Context) ([]Rule, error) {
	raw, err := s.kv.Load(ctx, storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		seeded := SeedRules(time.Now())
		s.save(ctx, seeded)
		return seeded, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "load rules", slog.Any("error", err))
		return SeedRules(time.Now()), nil
	}

	var stored []Rule
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.ErrorContext(ctx, "parse stored rules", slog.Any("error", err))
		return []Rule{}, nil
	}
	return stored, nil
}

// Create stores a new rule, assigning an identifier and timestamps.
func (s *Store) Create(ctx context.Context, rule Rule) (Rule, error) {
	stored, err := s.List(ctx)
	if err != nil {
		return Rule{}, fmt.Errorf("list rules: %w", err)
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	s.save(ctx, append(stored, rule))
	return rule, nil
}

// Update replaces the stored rule with the same identifier.
func (s *Store) Update(ctx context.Context, rule Rule) (Rule, error) {
	stored, err := s.List(ctx)
	if err != nil {
		return Rule{}, fmt.Errorf("list rules: %w", err)
	}

	for i, existing := range stored {
		if existing.ID != rule.ID {
			continue
		}
		rule.CreatedAt = existing.CreatedAt
		rule.UpdatedAt = time.Now()
		stored[i] = rule
		s.save(ctx, stored)
		return rule, nil
	}

	return Rule{}, fmt.Errorf("update rule %s: %w", rule.ID, ErrRuleNotFound)
}

// Delete removes the rule with the given identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	stored, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("list rules: %w", err)
	}

	for i, existing := range stored {
		if existing.ID != id {
			continue
		}
		s.save(ctx, append(stored[:i], stored[i+1:]...))
		return nil
	}

	return fmt.Errorf("delete rule %s: %w", id, ErrRuleNotFound)
}

// save serializes and persists the collection, logging and swallowing any
// failure.
func (s *Store) save(ctx context.Context, stored []Rule) {
	raw, err := json.Marshal(stored)
	if err != nil {
		s.logger.ErrorContext(ctx, "serialize rules", slog.Any("error", err))
		return
	}
	if err := s.kv.Save(ctx, storageKey, raw); err != nil {
		s.logger.ErrorContext(ctx, "save rules", slog.Any("error", err))
	}
}
