package model

import "time"

// FileRecord describes one file tracked in a user's vault directory.
// Records are keyed by Filename in the per-user metadata index; the key and
// the Filename field are always equal.
type FileRecord struct {
	Filename    string    `json:"filename"`     // Base name, unique within a user's vault
	Path        string    `json:"path"`         // Absolute location at time of recording
	Size        int64     `json:"size"`         // Byte length, snapshot at upload time
	CreatedAt   time.Time `json:"created_at"`   // Destination file creation (ctime on unix)
	ModifiedAt  time.Time `json:"modified_at"`  // Destination file mtime
	Owner       string    `json:"owner"`        // User active at upload time
	Permissions string    `json:"permissions"`  // Symbolic mode string, descriptive only
	IsEncrypted bool      `json:"is_encrypted"` // Whether stored bytes are ciphertext
}

// Operation represents one journaled vault operation.
type Operation struct {
	ID         string // UUID
	Operation  string // e.g. "Upload", "Delete", "SetUser"
	Username   string
	Filename   string // Empty for operations without a file argument
	Status     string // "success" or "error"
	StartedAt  time.Time
	FinishedAt time.Time
}
