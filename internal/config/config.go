// Package config loads the YAML application config, creating a default
// file on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath is the sqlite database file backing the local store.
	DBPath string `yaml:"db_path"`

	// CredentialsFile is the Google OAuth client credentials JSON.
	CredentialsFile string `yaml:"credentials_file"`

	// TokenFile stores the OAuth token once access has been granted.
	// A missing file means access is still undetermined.
	TokenFile string `yaml:"token_file"`

	// CalendarID names the live calendar; empty means "primary".
	CalendarID string `yaml:"calendar_id"`
}

// DefaultPath is the config location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "caluindar", "config.yaml"), nil
}

func defaultConfig(dir string) *Config {
	return &Config{
		DBPath:          filepath.Join(dir, "caluindar.db"),
		CredentialsFile: filepath.Join(dir, "credentials.json"),
		TokenFile:       filepath.Join(dir, "token.json"),
		CalendarID:      "primary",
	}
}

// Load reads the config at path, writing a default one first if none
// exists yet.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := defaultConfig(filepath.Dir(path))
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	return &cfg, nil
}

// Save writes the config with 0600 permissions; it may hold paths to
// credential material.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
