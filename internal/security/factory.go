//go:build unix

package security

import (
	"fmt"

	"fv-go/internal/config"
	"fv-go/internal/vault"
)

// NewSecurerFromConfig creates a Securer implementation based on the
// security config type.
func NewSecurerFromConfig(cfg config.SecurityConfig) (vault.Securer, error) {
	switch cfg.Type {
	case "posix", "":
		return NewPosixSecurer(), nil
	case "memory":
		return NewMemorySecurer("test"), nil
	default:
		return nil, fmt.Errorf("unknown security type: %q", cfg.Type)
	}
}
