package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/myrjola/coachplan/internal/sqlite"
	"github.com/myrjola/coachplan/internal/testhelpers"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(testhelpers.NewWriter(t)))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	return NewSQLiteStore(db)
}

func TestStores(t *testing.T) {
	stores := []struct {
		name string
		make func(t *testing.T) Store
	}{
		{name: "memory", make: func(_ *testing.T) Store { return NewMemoryStore() }},
		{name: "sqlite", make: func(t *testing.T) Store { return newSQLiteStore(t) }},
	}

	for _, impl := range stores {
		t.Run(impl.name, func(t *testing.T) {
			ctx := context.Background()
			store := impl.make(t)

			if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
			}

			if err := store.Save(ctx, "greeting", []byte(`{"hola":"mundo"}`)); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load(ctx, "greeting")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if string(got) != `{"hola":"mundo"}` {
				t.Errorf("Load() = %s", got)
			}

			// Save replaces the previous value.
			if err := store.Save(ctx, "greeting", []byte(`{}`)); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err = store.Load(ctx, "greeting")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if string(got) != `{}` {
				t.Errorf("Load() after overwrite = %s", got)
			}
		})
	}
}
