// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
)

// NewSQLiteStore opens an in-memory store for a test and closes it on
// cleanup.
func NewSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
