package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/myrjola/coachplan/internal/kv"
	"github.com/myrjola/coachplan/internal/testhelpers"
)

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (brokenStore) Save(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

// newTestStore returns a store over in-memory persistence whose clock
// advances one second per call, so timestamps are distinct and ordered.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(kv.NewMemoryStore(), testhelpers.NewLogger(testhelpers.NewWriter(t)))
	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return store
}

func TestStoreAppendAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	stored := store.Append(ctx, Record{Kind: KindRule, Name: "Regla"})

	if stored.ID == "" {
		t.Error("expected an assigned identifier")
	}
	if stored.Timestamp.IsZero() {
		t.Error("expected an assigned timestamp")
	}
}

func TestStoreCapsAtMostRecentThousand(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := store.Append(ctx, Record{Kind: KindRule, Name: "record-0"})
	for i := 1; i <= maxRecords; i++ {
		store.Append(ctx, Record{Kind: KindRule, Name: fmt.Sprintf("record-%d", i)})
	}

	listed := store.List(ctx, Filters{})
	if len(listed) != maxRecords {
		t.Fatalf("expected %d records after overflow, got %d", maxRecords, len(listed))
	}
	if listed[0].Name != fmt.Sprintf("record-%d", maxRecords) {
		t.Errorf("expected newest first, got %q", listed[0].Name)
	}
	for _, record := range listed {
		if record.ID == first.ID {
			t.Error("oldest record must have been dropped")
		}
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Append(ctx, Record{Kind: KindRule, Name: "older"})
	store.Append(ctx, Record{Kind: KindRule, Name: "newer"})

	listed := store.List(ctx, Filters{})
	if len(listed) != 2 || listed[0].Name != "newer" || listed[1].Name != "older" {
		t.Errorf("expected newest-first order, got %+v", listed)
	}
}

func TestStoreListFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Append(ctx, Record{Kind: KindRule, Name: "a", ProgramID: "p1", ClientID: "c1"})
	store.Append(ctx, Record{Kind: KindBulkOperation, Name: "b", ProgramID: "p1", ClientID: "c2"})
	store.Append(ctx, Record{Kind: KindRule, Name: "c", ProgramID: "p2", ClientID: "c1"})

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{name: "no filters", filters: Filters{}, want: []string{"c", "b", "a"}},
		{name: "by program", filters: Filters{ProgramID: "p1"}, want: []string{"b", "a"}},
		{name: "by client", filters: Filters{ClientID: "c1"}, want: []string{"c", "a"}},
		{name: "by kind", filters: Filters{Kind: KindBulkOperation}, want: []string{"b"}},
		{name: "combined", filters: Filters{ProgramID: "p1", Kind: KindRule}, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listed := store.List(ctx, tt.filters)
			got := make([]string, 0, len(listed))
			for _, record := range listed {
				got = append(got, record.Name)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestStoreListDateRange(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	early := store.Append(ctx, Record{Kind: KindRule, Name: "early"})
	late := store.Append(ctx, Record{Kind: KindRule, Name: "late"})

	listed := store.List(ctx, Filters{From: late.Timestamp})
	if len(listed) != 1 || listed[0].Name != "late" {
		t.Errorf("From filter failed, got %+v", listed)
	}

	listed = store.List(ctx, Filters{To: early.Timestamp})
	if len(listed) != 1 || listed[0].Name != "early" {
		t.Errorf("To filter failed, got %+v", listed)
	}
}

func TestStoreTrim(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore(), testhelpers.NewLogger(testhelpers.NewWriter(t)))
	now := time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)

	// Backdate the first append by forty days, then restore the clock.
	store.now = func() time.Time { return now.AddDate(0, 0, -40) }
	store.Append(ctx, Record{Kind: KindRule, Name: "stale"})
	store.now = func() time.Time { return now }
	store.Append(ctx, Record{Kind: KindRule, Name: "fresh"})

	removed := store.Trim(ctx, 30)
	if removed != 1 {
		t.Fatalf("Trim() = %d, want 1", removed)
	}
	listed := store.List(ctx, Filters{})
	if len(listed) != 1 || listed[0].Name != "fresh" {
		t.Errorf("expected only the fresh record, got %+v", listed)
	}

	if removed := store.Trim(ctx, 30); removed != 0 {
		t.Errorf("second Trim() = %d, want 0", removed)
	}
}

func TestStoreMalformedDataIsEmptyLog(t *testing.T) {
	ctx := context.Background()
	memory := kv.NewMemoryStore()
	if err := memory.Save(ctx, "coachplan.audit-log", []byte("{broken")); err != nil {
		t.Fatal(err)
	}
	store := NewStore(memory, testhelpers.NewLogger(testhelpers.NewWriter(t)))

	if listed := store.List(ctx, Filters{}); len(listed) != 0 {
		t.Errorf("expected an empty log for malformed data, got %+v", listed)
	}
}

func TestStoreSwallowsPersistenceFailures(t *testing.T) {
	ctx := context.Background()
	store := NewStore(brokenStore{}, testhelpers.NewLogger(testhelpers.NewWriter(t)))

	// Append still hands back the stored record; the write failure is only
	// logged.
	stored := store.Append(ctx, Record{Kind: KindRule, Name: "volátil"})
	if stored.ID == "" {
		t.Error("expected an assigned identifier despite the write failure")
	}
	if listed := store.List(ctx, Filters{}); len(listed) != 0 {
		t.Errorf("expected an empty list from a broken backend, got %+v", listed)
	}
}
