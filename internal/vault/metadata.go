package vault

import "fv-go/internal/model"

// MetadataStore persists the per-user filename → FileRecord mapping.
// The whole mapping is replaced on every Load/Save; there is no partial or
// append persistence.
type MetadataStore interface {
	// Load reads the metadata index under userDir. A missing index yields
	// an empty mapping and nil error. A corrupt or unreadable index yields
	// an empty, usable mapping together with a KindMetadataCorrupt error;
	// callers log it and continue with no known files.
	Load(userDir string) (map[string]*model.FileRecord, error)

	// Save serializes the full mapping to the index under userDir,
	// overwriting whatever is there.
	Save(userDir string, records map[string]*model.FileRecord) error

	// Reserved reports whether name is claimed by the store's own on-disk
	// artifacts under the user directory and cannot be used as a stored
	// filename.
	Reserved(name string) bool
}
