package vault

import (
	"io"
	"io/fs"
	"path/filepath"
	"time"
)

// FilesystemManager abstracts the filesystem operations the vault needs,
// so the service can be exercised against a temp directory in tests and so
// copy/probe semantics live in one place.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a symlink, device, etc.).
	Resolve(rawPath string) (*Path, error)

	// Open opens a file for reading.
	Open(path *Path) (io.ReadCloser, error)

	// Stat returns fresh file info for a raw path. Unlike Path.Info(),
	// which is cached from resolve time, this always hits the filesystem.
	Stat(path string) (fs.FileInfo, error)

	// Copy writes a byte-exact copy of src at dst, preserving the source
	// modification time. dst must not exist; Copy never overwrites.
	Copy(src *Path, dst string) error

	// Create opens a new file at path for writing. Used by the encrypting
	// upload path, where bytes pass through the Encryptor instead of Copy.
	Create(path string) (io.WriteCloser, error)

	// EnsureDir creates a directory if absent. Succeeds silently when the
	// directory already exists.
	EnsureDir(path string) error

	// Remove deletes a single file.
	Remove(path string) error

	// CreatedTime extracts the file creation time from info where the
	// platform exposes one (ctime on unix), falling back to ModTime.
	CreatedTime(info fs.FileInfo) time.Time
}

// Path represents a validated filesystem path with cached metadata,
// produced by FilesystemManager.Resolve.
type Path struct {
	absPath string
	isDir   bool
	info    fs.FileInfo
}

// NewPath creates a Path from its components. For use by FilesystemManager
// implementations.
func NewPath(absPath string, isDir bool, info fs.FileInfo) *Path {
	return &Path{absPath: absPath, isDir: isDir, info: info}
}

// String returns the absolute path.
func (p *Path) String() string { return p.absPath }

// Base returns the final path element. Uploads key metadata by base name.
func (p *Path) Base() string { return filepath.Base(p.absPath) }

// IsDir reports whether the path points to a directory.
func (p *Path) IsDir() bool { return p.isDir }

// Info returns the cached file info from when the path was resolved.
func (p *Path) Info() fs.FileInfo { return p.info }

// ModTime returns the cached modification time.
func (p *Path) ModTime() time.Time { return p.info.ModTime() }
