package vault

import (
	"errors"
	"fmt"
)

// Kind classifies vault errors so callers can tell recoverable conditions
// from ones that must stop the operation.
type Kind int

const (
	// KindUnknown is the zero Kind, used when no classification applies.
	KindUnknown Kind = iota

	// KindNoSession: an operation that needs an active user was called
	// before SetUser.
	KindNoSession

	// KindNotFound: the source or target path does not exist.
	KindNotFound

	// KindAccessDenied: the access probe failed for an existing path.
	KindAccessDenied

	// KindCollision: the destination filename already exists in the
	// user's vault; uploads never overwrite.
	KindCollision

	// KindSecurityProvisioning: applying owner-only permissions failed.
	// Always fail-loud — an insecure directory is worse than no directory.
	KindSecurityProvisioning

	// KindMetadataCorrupt: the metadata index could not be parsed.
	// Fail-soft — the store degrades to an empty mapping.
	KindMetadataCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindNoSession:
		return "no_session"
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindCollision:
		return "collision"
	case KindSecurityProvisioning:
		return "security_provisioning"
	case KindMetadataCorrupt:
		return "metadata_corrupt"
	default:
		return "unknown"
	}
}

// Error is the error type returned by vault operations.
type Error struct {
	Kind Kind
	Op   string // operation name, e.g. "Upload"
	Path string // offending path or filename, may be empty
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a vault Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}
