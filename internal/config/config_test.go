package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fv-go/internal/config"
)

func TestManager_ReadWrite(t *testing.T) {
	cfg := &config.Config{
		RootDir:  "/data/fv",
		Security: config.SecurityConfig{Type: "posix"},
		Encryption: config.EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/data/fv/keys/fv.pub",
			PrivateKeyPath: "/data/fv/keys/fv.key",
		},
		Journal: config.JournalConfig{Type: "sqlite", DataDir: "/data/fv"},
	}

	m := &config.Manager{}
	var buf bytes.Buffer
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.RootDir != cfg.RootDir {
		t.Errorf("RootDir = %q, want %q", got.RootDir, cfg.RootDir)
	}
	if got.Security.Type != cfg.Security.Type {
		t.Errorf("Security.Type = %q, want %q", got.Security.Type, cfg.Security.Type)
	}
	if got.Encryption != cfg.Encryption {
		t.Errorf("Encryption = %+v, want %+v", got.Encryption, cfg.Encryption)
	}
	if got.Journal != cfg.Journal {
		t.Errorf("Journal = %+v, want %+v", got.Journal, cfg.Journal)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig("/data/fv")

	if cfg.RootDir != "/data/fv" {
		t.Errorf("RootDir = %q, want %q", cfg.RootDir, "/data/fv")
	}
	if want := filepath.Join("/data/fv", "keys", "fv.pub"); cfg.Encryption.PublicKeyPath != want {
		t.Errorf("PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, want)
	}
	if want := filepath.Join("/data/fv", "keys", "fv.key"); cfg.Encryption.PrivateKeyPath != want {
		t.Errorf("PrivateKeyPath = %q, want %q", cfg.Encryption.PrivateKeyPath, want)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates a new config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "fv.toml")
		cfg := config.NewConfig("/data/fv")

		if err := config.Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := config.ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.RootDir != cfg.RootDir {
			t.Errorf("RootDir = %q, want %q", got.RootDir, cfg.RootDir)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fv.toml")
		if err := os.WriteFile(path, []byte("root_dir = \"/old\"\n"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := config.Init(path, config.NewConfig("/new")); err == nil {
			t.Fatal("Init() expected error for existing file")
		}

		got, err := config.ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.RootDir != "/old" {
			t.Error("existing config was overwritten")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("missing file fails", func(t *testing.T) {
		if _, err := config.ReadFromFile(filepath.Join(t.TempDir(), "ghost.toml")); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})

	t.Run("malformed toml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fv.toml")
		if err := os.WriteFile(path, []byte("root_dir = [broken"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if _, err := config.ReadFromFile(path); err == nil {
			t.Fatal("ReadFromFile() expected error for malformed toml")
		}
	})
}
