package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/sortstep/internal/testutil"
)

// createTestStore creates a new temp-dir store with deterministic run ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDs("run")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedID always returns the same id, to provoke primary key conflicts.
type fixedID string

func (f fixedID) NewID() string { return string(f) }
