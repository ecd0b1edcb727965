package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - FV_CONFIG_PATH: config file location (default: ~/.config/fv.toml)
//   - FV_ROOT: vault root directory (default: ~/.local/share/fv)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	rootDir, err := getRootDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"root_dir":    rootDir,
	}, nil
}

// getConfigPath returns the config file path, checking FV_CONFIG_PATH first,
// then falling back to the default ~/.config/fv.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("FV_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fv.toml"), nil
}

// getRootDir returns the vault root directory, checking FV_ROOT first,
// then falling back to the XDG default ~/.local/share/fv.
func getRootDir() (string, error) {
	if path := os.Getenv("FV_ROOT"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "fv"), nil
}
