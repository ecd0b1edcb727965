package migrations_test

import (
	"testing"

	"fv-go/internal/journal"
	"fv-go/internal/journal/migrations"
)

func TestMigrateUp(t *testing.T) {
	db, err := journal.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("OpenConnection() error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("SELECT 1 FROM operations"); err == nil {
		t.Fatal("operations table exists before migration")
	}

	if err := migrations.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	// Re-running against an up-to-date schema is not an error.
	if err := migrations.MigrateUp(db); err != nil {
		t.Errorf("second MigrateUp() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM operations").Scan(&count); err != nil {
		t.Fatalf("querying operations table: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh operations table has %d rows", count)
	}
}
