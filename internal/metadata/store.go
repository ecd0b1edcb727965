package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fv-go/internal/model"
	"fv-go/internal/vault"
)

// IndexFilename is the name of the per-user metadata document.
const IndexFilename = "metadata.json"

// JSONStore persists the filename → FileRecord mapping as one JSON document
// per user at <userDir>/metadata.json. Load and Save replace the whole
// mapping; there is no partial persistence.
type JSONStore struct{}

var _ vault.MetadataStore = (*JSONStore)(nil)

// NewJSONStore creates a JSONStore.
func NewJSONStore() *JSONStore {
	return &JSONStore{}
}

// Reserved reports whether name would collide with the index document
// itself. Storing a file under the index name would let the next save
// overwrite the user's bytes.
func (s *JSONStore) Reserved(name string) bool {
	return name == IndexFilename
}

// Load reads the metadata index under userDir. A missing index is not an
// error: it yields an empty mapping. A corrupt or unreadable index also
// yields an empty, usable mapping, together with a KindMetadataCorrupt error
// so the caller can log the degradation.
func (s *JSONStore) Load(userDir string) (map[string]*model.FileRecord, error) {
	records := make(map[string]*model.FileRecord)

	data, err := os.ReadFile(filepath.Join(userDir, IndexFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}
		return records, &vault.Error{Kind: vault.KindMetadataCorrupt, Op: "Load", Path: userDir, Err: err}
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return make(map[string]*model.FileRecord), &vault.Error{Kind: vault.KindMetadataCorrupt, Op: "Load", Path: userDir, Err: err}
	}

	return records, nil
}

// Save serializes the full mapping to the index under userDir, replacing the
// previous document. The write is atomic (temp file + rename) so a crash
// mid-save never leaves a half-written index behind.
func (s *JSONStore) Save(userDir string, records map[string]*model.FileRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	tmp, err := os.CreateTemp(userDir, ".metadata-*")
	if err != nil {
		return fmt.Errorf("creating temp index: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp index: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(userDir, IndexFilename)); err != nil {
		return fmt.Errorf("replacing index: %w", err)
	}

	success = true
	return nil
}
