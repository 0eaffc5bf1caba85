package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/coachplan/internal/kv"
)

// storageKey is the key-value entry holding the serialized audit log.
const storageKey = "coachplan.audit-log"

// maxRecords caps the log at the most recent entries on every append.
const maxRecords = 1000

// Store persists the audit log as one JSON array in a key-value store.
// Every operation is best-effort: persistence failures are logged and
// swallowed, because failing to audit must never block the edit being
// audited.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates an audit store over the given key-value store.
func NewStore(kvStore kv.Store, logger *slog.Logger) *Store {
	return &Store{kv: kvStore, logger: logger, now: time.Now}
}

// Append stores a record with a fresh identifier and timestamp, dropping the
// oldest entries beyond the retention cap. The stored record is returned.
func (s *Store) Append(ctx context.Context, record Record) Record {
	record.ID = uuid.NewString()
	record.Timestamp = s.now()

	stored := s.load(ctx)
	stored = append(stored, record)
	if len(stored) > maxRecords {
		stored = stored[len(stored)-maxRecords:]
	}
	s.save(ctx, stored)

	return record
}

// List returns the stored records newest-first, narrowed by the filters.
func (s *Store) List(ctx context.Context, filters Filters) []Record {
	stored := s.load(ctx)

	matched := make([]Record, 0, len(stored))
	for _, record := range stored {
		if filters.ProgramID != "" && record.ProgramID != filters.ProgramID {
			continue
		}
		if filters.ClientID != "" && record.ClientID != filters.ClientID {
			continue
		}
		if filters.Kind != "" && record.Kind != filters.Kind {
			continue
		}
		if !filters.From.IsZero() && record.Timestamp.Before(filters.From) {
			continue
		}
		if !filters.To.IsZero() && record.Timestamp.After(filters.To) {
			continue
		}
		matched = append(matched, record)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	return matched
}

// Trim removes records older than maxAgeDays and reports how many were
// removed.
func (s *Store) Trim(ctx context.Context, maxAgeDays int) int {
	cutoff := s.now().AddDate(0, 0, -maxAgeDays)
	stored := s.load(ctx)

	kept := make([]Record, 0, len(stored))
	for _, record := range stored {
		if record.Timestamp.Before(cutoff) {
			continue
		}
		kept = append(kept, record)
	}

	removed := len(stored) - len(kept)
	if removed > 0 {
		s.save(ctx, kept)
	}
	return removed
}

// load reads the stored log. A missing key or malformed data yields an
// empty log; read failures are logged and treated the same way.
func (s *Store) load(ctx context.Context) []Record {
	raw, err := s.kv.Load(ctx, storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Record{}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "load audit log", slog.Any("error", err))
		return []Record{}
	}

	var stored []Record
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.ErrorContext(ctx, "parse stored audit log", slog.Any("error", err))
		return []Record{}
	}
	return stored
}

func (s *Store) save(ctx context.Context, stored []Record) {
	raw, err := json.Marshal(stored)
	if err != nil {
		s.logger.ErrorContext(ctx, "serialize audit log", slog.Any("error", err))
		return
	}
	if err := s.kv.Save(ctx, storageKey, raw); err != nil {
		s.logger.ErrorContext(ctx, "save audit log", slog.Any("error", err))
	}
}
