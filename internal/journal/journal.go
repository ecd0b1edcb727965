package journal

import (
	"database/sql"
	"fmt"
	"time"

	"fv-go/internal/journal/migrations"
	"fv-go/internal/model"
	"fv-go/internal/vault"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements vault.Journal on a SQLite database.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

var _ vault.Journal = (*SQLiteJournal)(nil)

// NewSQLiteJournal opens (or creates) the journal database at path and
// brings its schema up to date. path can be ":memory:" for tests.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal schema: %w", err)
	}

	return &SQLiteJournal{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with appropriate
// PRAGMAs. Exported for tools and tests that need a raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// SQLite ships with foreign keys off for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// RecordOperation inserts a started operation row.
func (j *SQLiteJournal) RecordOperation(op *model.Operation) error {
	_, err := j.db.Exec(
		`INSERT INTO operations (id, operation, username, filename, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		op.ID, op.Operation, op.Username, op.Filename, op.Status, op.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}
	return nil
}

// FinishOperation marks an operation finished with the given status.
func (j *SQLiteJournal) FinishOperation(id string, status string) error {
	res, err := j.db.Exec(
		`UPDATE operations SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no such operation: %s", id)
	}
	return nil
}

// ListOperations returns the most recent operations, newest first.
func (j *SQLiteJournal) ListOperations(limit int) ([]*model.Operation, error) {
	rows, err := j.db.Query(
		`SELECT id, operation, username, filename, status, started_at, finished_at
		 FROM operations ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*model.Operation
	for rows.Next() {
		var op model.Operation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Operation, &op.Username, &op.Filename, &op.Status, &op.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if finished.Valid {
			op.FinishedAt = finished.Time
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
