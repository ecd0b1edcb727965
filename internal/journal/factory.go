package journal

import (
	"fmt"
	"path/filepath"

	"fv-go/internal/config"
	"fv-go/internal/model"
	"fv-go/internal/vault"
)

// DBFilename is the name of the journal database under the vault root.
const DBFilename = "fv.db"

// DBPath returns the on-disk location of the sqlite journal database for
// cfg: <data_dir>/fv.db, falling back to rootDir when no data_dir is
// configured. Anything that touches the database file (the factory, the
// securing pass) must agree on this path.
func DBPath(cfg config.JournalConfig, rootDir string) string {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = rootDir
	}
	return filepath.Join(dataDir, DBFilename)
}

// NewJournalFromConfig creates a Journal implementation based on the journal
// config type. rootDir is used when no explicit data_dir is configured.
func NewJournalFromConfig(cfg config.JournalConfig, rootDir string) (vault.Journal, error) {
	switch cfg.Type {
	case "sqlite", "":
		return NewSQLiteJournal(DBPath(cfg, rootDir))
	case "memory":
		return NewSQLiteJournal(":memory:")
	case "none":
		return NopJournal{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}

// NopJournal discards all operations. Used when journaling is disabled.
type NopJournal struct{}

var _ vault.Journal = NopJournal{}

func (NopJournal) RecordOperation(*model.Operation) error         { return nil }
func (NopJournal) FinishOperation(string, string) error           { return nil }
func (NopJournal) ListOperations(int) ([]*model.Operation, error) { return nil, nil }
func (NopJournal) Close() error                                   { return nil }
