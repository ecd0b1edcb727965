package metadata_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fv-go/internal/metadata"
	"fv-go/internal/model"
	"fv-go/internal/vault"
)

func sampleRecords() map[string]*model.FileRecord {
	return map[string]*model.FileRecord{
		"report.txt": {
			Filename:    "report.txt",
			Path:        "/vault/alice/report.txt",
			Size:        1024,
			CreatedAt:   time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC),
			ModifiedAt:  time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC),
			Owner:       "alice",
			Permissions: "-rw-------",
			IsEncrypted: false,
		},
		"secret.bin": {
			Filename:    "secret.bin",
			Path:        "/vault/alice/secret.bin",
			Size:        2048,
			CreatedAt:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			ModifiedAt:  time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			Owner:       "alice",
			Permissions: "-rw-------",
			IsEncrypted: true,
		},
	}
}

func TestJSONStore_SaveLoad(t *testing.T) {
	t.Run("round trip preserves every field", func(t *testing.T) {
		store := metadata.NewJSONStore()
		dir := t.TempDir()
		want := sampleRecords()

		if err := store.Save(dir, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := store.Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if len(got) != len(want) {
			t.Fatalf("Load() = %d records, want %d", len(got), len(want))
		}
		for name, w := range want {
			g, ok := got[name]
			if !ok {
				t.Fatalf("record %q missing after round trip", name)
			}
			if g.Filename != w.Filename || g.Path != w.Path || g.Size != w.Size {
				t.Errorf("record %q identity fields differ: got %+v", name, g)
			}
			if !g.CreatedAt.Equal(w.CreatedAt) || !g.ModifiedAt.Equal(w.ModifiedAt) {
				t.Errorf("record %q timestamps differ: got %v/%v", name, g.CreatedAt, g.ModifiedAt)
			}
			if g.Owner != w.Owner || g.Permissions != w.Permissions || g.IsEncrypted != w.IsEncrypted {
				t.Errorf("record %q attribute fields differ: got %+v", name, g)
			}
		}
	})

	t.Run("save replaces the previous index wholesale", func(t *testing.T) {
		store := metadata.NewJSONStore()
		dir := t.TempDir()

		if err := store.Save(dir, sampleRecords()); err != nil {
			t.Fatalf("first Save() error = %v", err)
		}
		second := map[string]*model.FileRecord{
			"only.txt": {Filename: "only.txt", Path: "/vault/alice/only.txt"},
		}
		if err := store.Save(dir, second); err != nil {
			t.Fatalf("second Save() error = %v", err)
		}

		got, err := store.Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Load() = %d records, want 1", len(got))
		}
		if _, ok := got["only.txt"]; !ok {
			t.Error("replacement record missing")
		}
	})

	t.Run("saving an empty mapping is valid", func(t *testing.T) {
		store := metadata.NewJSONStore()
		dir := t.TempDir()

		if err := store.Save(dir, map[string]*model.FileRecord{}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := store.Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Load() = %d records, want 0", len(got))
		}
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		store := metadata.NewJSONStore()
		dir := t.TempDir()

		if err := store.Save(dir, sampleRecords()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".metadata-") {
				t.Errorf("temp file %s left behind", e.Name())
			}
		}
	})
}

func TestJSONStore_Load(t *testing.T) {
	t.Run("missing index yields an empty mapping", func(t *testing.T) {
		store := metadata.NewJSONStore()

		got, err := store.Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got == nil {
			t.Fatal("Load() returned nil mapping")
		}
		if len(got) != 0 {
			t.Errorf("Load() = %d records, want 0", len(got))
		}
	})

	t.Run("corrupt index yields empty mapping and a corruption error", func(t *testing.T) {
		store := metadata.NewJSONStore()
		dir := t.TempDir()
		path := filepath.Join(dir, metadata.IndexFilename)
		if err := os.WriteFile(path, []byte("{\"broken"), 0o600); err != nil {
			t.Fatalf("writing corrupt index: %v", err)
		}

		got, err := store.Load(dir)
		if !vault.IsKind(err, vault.KindMetadataCorrupt) {
			t.Fatalf("Load() error = %v, want KindMetadataCorrupt", err)
		}
		if got == nil {
			t.Fatal("Load() returned nil mapping for corrupt index")
		}
		if len(got) != 0 {
			t.Errorf("Load() = %d records, want 0", len(got))
		}
	})
}
