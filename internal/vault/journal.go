package vault

import "fv-go/internal/model"

// Journal records mutating vault operations for auditing.
// Implementations must tolerate being called after the session's user
// changes; entries carry their own username.
type Journal interface {
	// RecordOperation inserts a started operation. Status and FinishedAt
	// are set later via FinishOperation.
	RecordOperation(op *model.Operation) error

	// FinishOperation marks an operation finished with the given status.
	FinishOperation(id string, status string) error

	// ListOperations returns the most recent operations, newest first.
	ListOperations(limit int) ([]*model.Operation, error)

	// Close closes the underlying store.
	Close() error
}
