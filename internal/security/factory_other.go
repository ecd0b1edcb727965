//go:build !unix

package security

import (
	"fmt"

	"fv-go/internal/config"
	"fv-go/internal/vault"
)

// NewSecurerFromConfig creates a Securer implementation based on the
// security config type. Only the memory securer is available on platforms
// without POSIX permission semantics.
func NewSecurerFromConfig(cfg config.SecurityConfig) (vault.Securer, error) {
	switch cfg.Type {
	case "memory":
		return NewMemorySecurer("test"), nil
	case "posix", "":
		return nil, fmt.Errorf("posix security is not supported on this platform")
	default:
		return nil, fmt.Errorf("unknown security type: %s", cfg.Type)
	}
}
