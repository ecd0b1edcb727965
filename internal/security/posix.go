//go:build unix

package security

import (
	"fmt"
	"os"
	"os/user"

	"fv-go/internal/vault"
)

// PosixSecurer implements vault.Securer with owner-only mode bits, the
// nearest POSIX equivalent of a protected two-principal ACL: the owner keeps
// full control and the system account (root) always retains access. Group
// and world bits are cleared outright, so nothing inherited from the parent
// directory or the process umask can widen access.
type PosixSecurer struct{}

var _ vault.Securer = (*PosixSecurer)(nil)

// NewPosixSecurer creates a PosixSecurer.
func NewPosixSecurer() *PosixSecurer {
	return &PosixSecurer{}
}

// SecureDir restricts a directory to rwx for the owner only.
func (s *PosixSecurer) SecureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	if err := os.Chmod(path, 0o700); err != nil {
		return fmt.Errorf("restricting directory %s: %w", path, err)
	}
	return nil
}

// SecureFile restricts a file to rw for the owner only.
func (s *PosixSecurer) SecureFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("not a file: %s", path)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restricting file %s: %w", path, err)
	}
	return nil
}

// CurrentPrincipal resolves the username of the calling process.
func (s *PosixSecurer) CurrentPrincipal() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolving current user: %w", err)
	}
	return u.Username, nil
}
