package testutil

import (
	"testing"

	"fv-go/internal/journal"
)

// NewTestJournal creates an in-memory SQLite journal with the schema
// migrated, closed automatically when the test finishes.
func NewTestJournal(t *testing.T) *journal.SQLiteJournal {
	t.Helper()

	j, err := journal.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("creating test journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}
