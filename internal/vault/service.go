package vault

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"fv-go/internal/model"
)

// VaultService coordinates the metadata store and the platform Securer into
// the per-user file lifecycle: provision a private directory, copy files in,
// secure them, and keep the sidecar index consistent.
//
// The service holds one user session at a time. It performs no internal
// locking; concurrent sessions against the same user can lose metadata
// updates and require external serialization.
type VaultService struct {
	root      string
	store     MetadataStore
	securer   Securer
	fsmgr     FilesystemManager
	encryptor Encryptor
	logger    Logger

	user    string
	userDir string
	records map[string]*model.FileRecord
}

// NewVaultService creates a VaultService rooted at root with the provided
// dependencies. No user is active until SetUser is called.
func NewVaultService(root string, store MetadataStore, securer Securer, fsmgr FilesystemManager, encryptor Encryptor, logger Logger) *VaultService {
	return &VaultService{
		root:      root,
		store:     store,
		securer:   securer,
		fsmgr:     fsmgr,
		encryptor: encryptor,
		logger:    logger,
	}
}

// User returns the active username, or "" when no session is active.
func (s *VaultService) User() string { return s.user }

// UserDir returns the active user's vault directory.
func (s *VaultService) UserDir() string { return s.userDir }

// SetUser activates a session for username: provisions (or re-secures) the
// user's private directory and loads their metadata index. Switching users
// discards the prior in-memory mapping; it is already durable on disk.
//
// Provisioning is idempotent. A failure to apply owner-only permissions is a
// hard KindSecurityProvisioning error — an insecure directory is worse than
// no directory. A corrupt metadata index is not fatal: the session starts
// with an empty mapping and a warning in the log.
func (s *VaultService) SetUser(username string) error {
	if username == "" || username != filepath.Base(username) || strings.HasPrefix(username, ".") {
		return fmt.Errorf("invalid username: %q", username)
	}

	userDir := filepath.Join(s.root, username)
	if err := s.fsmgr.EnsureDir(userDir); err != nil {
		return fmt.Errorf("creating user directory: %w", err)
	}
	if err := s.securer.SecureDir(userDir); err != nil {
		return &Error{Kind: KindSecurityProvisioning, Op: "SetUser", Path: userDir, Err: err}
	}

	records, err := s.store.Load(userDir)
	if err != nil {
		// Degrade to "no known files" rather than refusing the session.
		s.logger.Warn("metadata index unreadable, starting empty", "user", username, "error", err)
	}

	s.user = username
	s.userDir = userDir
	s.records = records

	s.logger.Info("user session started", "user", username, "dir", userDir, "files", len(records))
	return nil
}

// Upload copies the file at src into the active user's directory, secures
// it, and records it in the metadata index. The destination name is the
// source's base name; if a file of that name already exists the upload fails
// with KindCollision and the existing file is left untouched. Names claimed
// by the metadata store itself are reserved and fail the same way, even into
// a fresh directory.
//
// When encrypt is true the stored bytes pass through the Encryptor and the
// record is flagged accordingly. The returned record reflects the
// destination file's actual stat data, not the source's.
func (s *VaultService) Upload(src *Path, encrypt bool) (*model.FileRecord, error) {
	if s.user == "" {
		return nil, &Error{Kind: KindNoSession, Op: "Upload"}
	}
	if src.IsDir() {
		return nil, fmt.Errorf("cannot upload a directory: %s", src)
	}

	name := src.Base()
	dst := filepath.Join(s.userDir, name)

	if s.store.Reserved(name) {
		s.logger.Warn("filename reserved for the metadata index", "user", s.user, "filename", name)
		return nil, &Error{Kind: KindCollision, Op: "Upload", Path: name}
	}

	if _, err := s.fsmgr.Stat(dst); err == nil {
		s.logger.Warn("file already exists, not overwriting", "user", s.user, "filename", name)
		return nil, &Error{Kind: KindCollision, Op: "Upload", Path: name}
	}

	if encrypt {
		if err := s.encryptingCopy(src, dst); err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", name, err)
		}
	} else {
		if err := s.fsmgr.Copy(src, dst); err != nil {
			return nil, fmt.Errorf("copying %s: %w", name, err)
		}
	}

	if err := s.securer.SecureFile(dst); err != nil {
		// Do not leave an insecure copy behind.
		if rmErr := s.fsmgr.Remove(dst); rmErr != nil {
			s.logger.Error("removing insecure copy failed", "path", dst, "error", rmErr)
		}
		return nil, &Error{Kind: KindSecurityProvisioning, Op: "Upload", Path: dst, Err: err}
	}

	info, err := s.fsmgr.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat destination: %w", err)
	}

	rec := &model.FileRecord{
		Filename:    name,
		Path:        dst,
		Size:        info.Size(),
		CreatedAt:   s.fsmgr.CreatedTime(info),
		ModifiedAt:  info.ModTime(),
		Owner:       s.user,
		Permissions: info.Mode().String(),
		IsEncrypted: encrypt,
	}

	s.records[name] = rec
	s.persist("Upload")

	s.logger.Info("file uploaded", "user", s.user, "filename", name, "size", rec.Size, "encrypted", encrypt)
	return rec, nil
}

// encryptingCopy streams src through the Encryptor into a new file at dst.
// A partial destination is removed on any failure.
func (s *VaultService) encryptingCopy(src *Path, dst string) error {
	r, err := s.fsmgr.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer r.Close()

	w, err := s.fsmgr.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if err := s.encryptor.Encrypt(r, w); err != nil {
		w.Close()
		if rmErr := s.fsmgr.Remove(dst); rmErr != nil {
			s.logger.Error("removing partial destination failed", "path", dst, "error", rmErr)
		}
		return err
	}
	return w.Close()
}

// Delete removes the file at path from disk and drops its metadata entry,
// looked up by base name. A file with no metadata entry is still removed;
// the index is a best-effort mirror, not a gate.
//
// The access probe must pass first; on probe failure nothing is mutated and
// the error kind tells a missing path (KindNotFound) from an unreadable one
// (KindAccessDenied).
func (s *VaultService) Delete(path string) error {
	if s.user == "" {
		return &Error{Kind: KindNoSession, Op: "Delete"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if !s.VerifyAccess(abs) {
		if _, statErr := s.fsmgr.Stat(abs); statErr != nil {
			return &Error{Kind: KindNotFound, Op: "Delete", Path: abs, Err: statErr}
		}
		return &Error{Kind: KindAccessDenied, Op: "Delete", Path: abs}
	}

	if err := s.fsmgr.Remove(abs); err != nil {
		return fmt.Errorf("removing %s: %w", abs, err)
	}

	name := filepath.Base(abs)
	if _, ok := s.records[name]; ok {
		delete(s.records, name)
		s.persist("Delete")
	} else {
		s.logger.Debug("no metadata entry for deleted file", "filename", name)
	}

	s.logger.Info("file deleted", "user", s.user, "filename", name)
	return nil
}

// VerifyAccess reports whether the calling process can currently read the
// file at path, via an open-and-read-one-byte probe. It never returns an
// error: missing paths, directories, permission failures, and I/O errors all
// report false. An empty but readable file reports true.
//
// This is a liveness probe, not a security boundary.
func (s *VaultService) VerifyAccess(path string) bool {
	info, err := s.fsmgr.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	f, err := s.fsmgr.Open(NewPath(path, false, info))
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && err != io.EOF {
		return false
	}
	return true
}

// Retrieve streams the stored bytes of filename to w. Records flagged
// encrypted require a Decryptor obtained from Encryptor.Unlock; passing nil
// for a plaintext record is fine.
func (s *VaultService) Retrieve(filename string, w io.Writer, dec Decryptor) error {
	if s.user == "" {
		return &Error{Kind: KindNoSession, Op: "Retrieve"}
	}

	rec, ok := s.records[filename]
	if !ok {
		return &Error{Kind: KindNotFound, Op: "Retrieve", Path: filename}
	}

	p, err := s.fsmgr.Resolve(rec.Path)
	if err != nil {
		return &Error{Kind: KindNotFound, Op: "Retrieve", Path: rec.Path, Err: err}
	}

	f, err := s.fsmgr.Open(p)
	if err != nil {
		return fmt.Errorf("opening %s: %w", rec.Path, err)
	}
	defer f.Close()

	if rec.IsEncrypted {
		if dec == nil {
			return fmt.Errorf("%s is encrypted: decryption not unlocked", filename)
		}
		return dec.Decrypt(f, w)
	}

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading %s: %w", rec.Path, err)
	}
	return nil
}

// Get returns the metadata record for filename, if present.
func (s *VaultService) Get(filename string) (*model.FileRecord, bool) {
	rec, ok := s.records[filename]
	return rec, ok
}

// List returns the active user's records ordered by filename.
func (s *VaultService) List() []*model.FileRecord {
	out := make([]*model.FileRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// persist saves the in-memory mapping. Save failures are logged and not
// propagated: file operations stay available, at the documented risk that
// memory and disk diverge until the next successful save.
func (s *VaultService) persist(op string) {
	if err := s.store.Save(s.userDir, s.records); err != nil {
		s.logger.Error("metadata save failed, index may be stale", "op", op, "user", s.user, "error", err)
	}
}
