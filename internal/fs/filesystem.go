package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"fv-go/internal/vault"
)

// OSFilesystemManager is the real filesystem implementation of
// vault.FilesystemManager, built on the os package.
type OSFilesystemManager struct{}

var _ vault.FilesystemManager = (*OSFilesystemManager)(nil)

// NewOSFilesystemManager creates a filesystem manager that operates on the
// real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*vault.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Special file types are not supported as vault content.
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return nil, fmt.Errorf("symlinks not supported: %s", absPath)
	case mode&os.ModeDevice != 0:
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	case mode&os.ModeNamedPipe != 0:
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	case mode&os.ModeSocket != 0:
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return vault.NewPath(absPath, info.IsDir(), info), nil
}

// Open opens a file for reading.
func (m *OSFilesystemManager) Open(path *vault.Path) (io.ReadCloser, error) {
	if path.IsDir() {
		return nil, fmt.Errorf("cannot open directory as file: %s", path)
	}
	return os.Open(path.String())
}

// Stat returns fresh file info for a raw path.
func (m *OSFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Create opens a new file at path for writing. Fails if the file exists.
func (m *OSFilesystemManager) Create(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
}

// EnsureDir creates a directory if absent, parents included. Succeeds
// silently when the directory already exists.
func (m *OSFilesystemManager) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}

// Remove deletes a single file.
func (m *OSFilesystemManager) Remove(path string) error {
	return os.Remove(path)
}

// Copy writes a byte-exact copy of src at dst and carries the source
// modification time over to the copy. dst must not exist.
func (m *OSFilesystemManager) Copy(src *vault.Path, dst string) error {
	in, err := m.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := m.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	success := false
	defer func() {
		if !success {
			os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying data: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	mtime := src.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return fmt.Errorf("preserving timestamps: %w", err)
	}

	success = true
	return nil
}
