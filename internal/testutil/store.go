package testutil

import (
	"context"
	"testing"

	"github.com/nhle/gift-tracker/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestHandle returns a Handle whose store is the in-memory store s.
func NewTestHandle(t *testing.T, s *store.SQLiteStore) *store.Handle {
	t.Helper()

	return store.NewHandleWithOpener(func(context.Context) (*store.SQLiteStore, error) {
		return s, nil
	})
}
