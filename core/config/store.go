package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "dnswitch"
	configFileName = "config.yaml"
)

// Store persists an AppConfig as YAML at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file. An empty path selects
// the default per-user location.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted configuration. A missing file is not an error; it
// yields an empty default so first runs start clean.
func (s *Store) Load() (*AppConfig, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", s.path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", s.path, err)
	}
	return &cfg, nil
}

// Save writes the configuration, creating the parent directory on demand.
func (s *Store) Save(cfg *AppConfig) error {
	buf, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, buf, 0o600); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", s.path, err)
	}
	return nil
}
