package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fv-go/internal/config"
	"fv-go/internal/encryption"
	"fv-go/internal/fs"
	"fv-go/internal/journal"
	"fv-go/internal/metadata"
	"fv-go/internal/model"
	"fv-go/internal/security"
	"fv-go/internal/vault"
)

// FVApp is the application layer between the CLI and VaultService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and manages the journal record and log file
// lifecycle on Close.
type FVApp struct {
	cfg       *config.Config
	service   *vault.VaultService
	journal   vault.Journal
	fsmgr     vault.FilesystemManager
	encryptor vault.Encryptor
	logFile   *os.File

	clock vault.Clock
	idgen vault.IDGenerator

	op         *model.Operation
	opRecorded bool
}

// NewFVApp creates a fully wired FVApp from the given config and activates a
// session for username. An empty username falls back to the securer's
// current principal. operation identifies the CLI command being run
// (e.g. "Upload", "Delete"). The caller must call Close when done.
func NewFVApp(cfg *config.Config, operation, username string) (*FVApp, error) {
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating root directory: %w", err)
	}

	securer, err := security.NewSecurerFromConfig(cfg.Security)
	if err != nil {
		return nil, fmt.Errorf("creating securer: %w", err)
	}

	if username == "" {
		username, err = securer.CurrentPrincipal()
		if err != nil {
			return nil, fmt.Errorf("resolving current principal: %w", err)
		}
	}

	logger, logFile, err := newLogger(cfg.RootDir, username, securer)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	jnl, err := journal.NewJournalFromConfig(cfg.Journal, cfg.RootDir)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	// The journal database holds every user's operation log; it gets the
	// same owner-only treatment as user files.
	dbPath := journal.DBPath(cfg.Journal, cfg.RootDir)
	if _, statErr := os.Stat(dbPath); statErr == nil {
		if err := securer.SecureFile(dbPath); err != nil {
			jnl.Close()
			logFile.Close()
			return nil, fmt.Errorf("securing journal database: %w", err)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		jnl.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	clock := vault.RealClock{}
	idgen := vault.UUIDGenerator{}
	fsmgr := fs.NewOSFilesystemManager()

	svc := vault.NewVaultService(cfg.RootDir, metadata.NewJSONStore(), securer, fsmgr, enc, &slogAdapter{l: logger})
	if err := svc.SetUser(username); err != nil {
		jnl.Close()
		logFile.Close()
		return nil, fmt.Errorf("starting session for %q: %w", username, err)
	}

	return &FVApp{
		cfg:       cfg,
		service:   svc,
		journal:   jnl,
		fsmgr:     fsmgr,
		encryptor: enc,
		logFile:   logFile,
		clock:     clock,
		idgen:     idgen,
		op: &model.Operation{
			ID:        idgen.New(),
			Operation: operation,
			Username:  username,
			Status:    "success",
			StartedAt: clock.Now(),
		},
	}, nil
}

// recordOperation journals the operation. Only mutating commands record;
// read-only commands leave no journal trace.
func (a *FVApp) recordOperation(filename string) error {
	if a.opRecorded {
		return nil
	}
	a.op.Filename = filename
	if err := a.journal.RecordOperation(a.op); err != nil {
		return fmt.Errorf("journaling operation: %w", err)
	}
	a.opRecorded = true
	return nil
}

// fail marks the journaled operation as failed and returns err unchanged.
func (a *FVApp) fail(err error) error {
	if err != nil {
		a.op.Status = "error"
	}
	return err
}

// Put copies the file at rawPath into the active user's vault.
// encrypt stores ciphertext instead of a plain copy.
func (a *FVApp) Put(rawPath string, encrypt bool) (*model.FileRecord, error) {
	p, err := a.fsmgr.Resolve(rawPath)
	if err != nil {
		return nil, a.fail(fmt.Errorf("resolving path: %w", err))
	}
	if err := a.recordOperation(p.Base()); err != nil {
		return nil, a.fail(err)
	}
	rec, err := a.service.Upload(p, encrypt)
	return rec, a.fail(err)
}

// Remove deletes the file at rawPath from disk and from the metadata index.
func (a *FVApp) Remove(rawPath string) error {
	if err := a.recordOperation(filepath.Base(rawPath)); err != nil {
		return a.fail(err)
	}
	return a.fail(a.service.Delete(rawPath))
}

// Verify reports whether the file at rawPath is currently readable.
func (a *FVApp) Verify(rawPath string) bool {
	abs, err := filepath.Abs(rawPath)
	if err != nil {
		return false
	}
	return a.service.VerifyAccess(abs)
}

// List returns the active user's records ordered by filename.
func (a *FVApp) List() []*model.FileRecord {
	return a.service.List()
}

// Get returns the metadata record for filename, if present.
func (a *FVApp) Get(filename string) (*model.FileRecord, bool) {
	return a.service.Get(filename)
}

// Retrieve streams the stored bytes of filename to w. For encrypted records
// the passphrase unlocks the private key first.
func (a *FVApp) Retrieve(filename string, w io.Writer, passphrase string) error {
	rec, ok := a.service.Get(filename)
	if !ok {
		return &vault.Error{Kind: vault.KindNotFound, Op: "Retrieve", Path: filename}
	}

	var dec vault.Decryptor
	if rec.IsEncrypted {
		var err error
		dec, err = a.encryptor.Unlock(passphrase)
		if err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}
	}

	return a.service.Retrieve(filename, w, dec)
}

// History returns the most recent journaled operations, newest first.
func (a *FVApp) History(limit int) ([]*model.Operation, error) {
	return a.journal.ListOperations(limit)
}

// SetupKeys generates the encryption key pair, protecting the private key
// with passphrase.
func (a *FVApp) SetupKeys(passphrase string) error {
	if a.encryptor.IsConfigured() {
		return fmt.Errorf("encryption keys already exist")
	}
	return a.encryptor.Setup(passphrase)
}

// EncryptionConfigured reports whether the key pair exists.
func (a *FVApp) EncryptionConfigured() bool {
	return a.encryptor.IsConfigured()
}

// Close finalizes the journaled operation (if one was recorded) and releases
// the journal and log file.
func (a *FVApp) Close() error {
	var firstErr error

	if a.opRecorded {
		if err := a.journal.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing journal record: %w", err)
		}
	}

	if err := a.journal.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
