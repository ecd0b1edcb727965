package testutil

import (
	"errors"

	"fv-go/internal/model"
	"fv-go/internal/vault"
)

// ErrSaveFailed is returned by FlakyStore when saves are failing.
var ErrSaveFailed = errors.New("save failed")

// FlakyStore wraps a MetadataStore and lets tests force save failures to
// exercise the fail-soft persistence path.
type FlakyStore struct {
	Inner vault.MetadataStore

	// FailSaves makes every Save return ErrSaveFailed without writing.
	FailSaves bool

	// Saves counts Save attempts, failed ones included.
	Saves int
}

var _ vault.MetadataStore = (*FlakyStore)(nil)

func (s *FlakyStore) Load(userDir string) (map[string]*model.FileRecord, error) {
	return s.Inner.Load(userDir)
}

func (s *FlakyStore) Save(userDir string, records map[string]*model.FileRecord) error {
	s.Saves++
	if s.FailSaves {
		return ErrSaveFailed
	}
	return s.Inner.Save(userDir, records)
}

func (s *FlakyStore) Reserved(name string) bool {
	return s.Inner.Reserved(name)
}
