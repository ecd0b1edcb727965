package security

import (
	"sort"
	"sync"

	"fv-go/internal/vault"
)

// MemorySecurer is a vault.Securer that records which paths were secured
// without touching platform permissions. Used in tests and as the null
// implementation on platforms without a real Securer.
type MemorySecurer struct {
	mu        sync.Mutex
	dirs      map[string]int
	files     map[string]int
	principal string

	// FailWith, when set, is returned by every Secure call. Lets tests
	// exercise the fail-loud provisioning path.
	FailWith error
}

var _ vault.Securer = (*MemorySecurer)(nil)

// NewMemorySecurer creates a MemorySecurer reporting the given principal.
func NewMemorySecurer(principal string) *MemorySecurer {
	return &MemorySecurer{
		dirs:      make(map[string]int),
		files:     make(map[string]int),
		principal: principal,
	}
}

func (s *MemorySecurer) SecureDir(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.dirs[path]++
	return nil
}

func (s *MemorySecurer) SecureFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.files[path]++
	return nil
}

func (s *MemorySecurer) CurrentPrincipal() (string, error) {
	return s.principal, nil
}

// SecuredDirs returns the secured directory paths, sorted.
func (s *MemorySecurer) SecuredDirs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.dirs)
}

// SecuredFiles returns the secured file paths, sorted.
func (s *MemorySecurer) SecuredFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.files)
}

// SecureCount returns how many times path was secured as a directory.
func (s *MemorySecurer) SecureCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirs[path]
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
