package vault

// Securer is the narrow platform capability the vault depends on for access
// control: "restrict this path to the owning account and the system account".
// On POSIX targets this is owner-only mode bits (root always retains access);
// an ACL-capable platform would apply a protected two-principal allow-list.
// Business logic never touches platform security APIs directly.
type Securer interface {
	// SecureDir restricts a directory to the owner and system principals,
	// replacing any inherited permissions.
	SecureDir(path string) error

	// SecureFile applies the same restriction to a single file.
	SecureFile(path string) error

	// CurrentPrincipal resolves the identity of the calling process.
	CurrentPrincipal() (string, error)
}
