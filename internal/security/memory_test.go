package security_test

import (
	"errors"
	"testing"

	"fv-go/internal/security"
)

func TestMemorySecurer(t *testing.T) {
	t.Run("records secured paths", func(t *testing.T) {
		sec := security.NewMemorySecurer("test")

		if err := sec.SecureDir("/vault/alice"); err != nil {
			t.Fatalf("SecureDir() error = %v", err)
		}
		if err := sec.SecureDir("/vault/alice"); err != nil {
			t.Fatalf("SecureDir() error = %v", err)
		}
		if err := sec.SecureFile("/vault/alice/a.txt"); err != nil {
			t.Fatalf("SecureFile() error = %v", err)
		}

		if got := sec.SecureCount("/vault/alice"); got != 2 {
			t.Errorf("SecureCount() = %d, want 2", got)
		}
		if got := sec.SecuredDirs(); len(got) != 1 || got[0] != "/vault/alice" {
			t.Errorf("SecuredDirs() = %v", got)
		}
		if got := sec.SecuredFiles(); len(got) != 1 || got[0] != "/vault/alice/a.txt" {
			t.Errorf("SecuredFiles() = %v", got)
		}
	})

	t.Run("FailWith forces every call to fail", func(t *testing.T) {
		sec := security.NewMemorySecurer("test")
		sec.FailWith = errors.New("denied")

		if err := sec.SecureDir("/vault/alice"); err == nil {
			t.Error("SecureDir() expected forced error")
		}
		if err := sec.SecureFile("/vault/alice/a.txt"); err == nil {
			t.Error("SecureFile() expected forced error")
		}
		if len(sec.SecuredDirs()) != 0 || len(sec.SecuredFiles()) != 0 {
			t.Error("failed calls must not record paths")
		}
	})

	t.Run("reports the configured principal", func(t *testing.T) {
		sec := security.NewMemorySecurer("alice")
		principal, err := sec.CurrentPrincipal()
		if err != nil {
			t.Fatalf("CurrentPrincipal() error = %v", err)
		}
		if principal != "alice" {
			t.Errorf("CurrentPrincipal() = %q, want %q", principal, "alice")
		}
	})
}
