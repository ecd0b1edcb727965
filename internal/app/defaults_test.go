package app

import (
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("FV_CONFIG_PATH", "/custom/fv.toml")
		t.Setenv("FV_ROOT", "/custom/root")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}
		if defaults["config_path"] != "/custom/fv.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/fv.toml")
		}
		if defaults["root_dir"] != "/custom/root" {
			t.Errorf("root_dir = %q, want %q", defaults["root_dir"], "/custom/root")
		}
	})

	t.Run("falls back to home-relative paths", func(t *testing.T) {
		t.Setenv("FV_CONFIG_PATH", "")
		t.Setenv("FV_ROOT", "")
		t.Setenv("HOME", "/home/alice")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}
		if want := filepath.Join("/home/alice", ".config", "fv.toml"); defaults["config_path"] != want {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], want)
		}
		if want := filepath.Join("/home/alice", ".local", "share", "fv"); defaults["root_dir"] != want {
			t.Errorf("root_dir = %q, want %q", defaults["root_dir"], want)
		}
	})
}
