// Package testutil provides shared helpers for tests.
package testutil

import (
	"log/slog"
	"testing"

	"github.com/mwhelan/tripmate/internal/store"
)

// NewStore opens a store on a fresh temporary directory.
// The directory is removed automatically when the test (and all its
// subtests) finish, giving free per-test isolation with no cleanup code.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(t.TempDir(), slog.Default())
	if err != nil {
		t.Fatalf("testutil.NewStore: open store: %v", err)
	}
	return st
}

// ReopenStore opens a second store over an existing data directory,
// simulating a process restart. Used by round-trip persistence tests.
func ReopenStore(t *testing.T, dir string) *store.Store {
	t.Helper()

	st, err := store.Open(dir, slog.Default())
	if err != nil {
		t.Fatalf("testutil.ReopenStore: open store: %v", err)
	}
	return st
}
