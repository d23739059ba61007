package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in the config file.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// StorageConfig selects and locates the storage backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "json" (default) or "sqlite"
	Path    string `yaml:"path"`    // events file for the json backend
	DBPath  string `yaml:"db_path"` // database file for the sqlite backend
}

// AuditConfig controls the append-only audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Audit   AuditConfig   `yaml:"audit"`
}

// Default returns the configuration used when no config file exists.
// Paths are working-directory-relative, matching the original behavior.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			Path:    "events.json",
			DBPath:  "diary.db",
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    "audit.log",
		},
	}
}

// Load reads the config file at path. An absent file yields the defaults;
// present keys override them.
// PRE: path is non-empty
// POST: returned config has a valid backend or an error is returned
func Load(path string) (Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("config %s: unknown storage backend %q", path, c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return Config{}, fmt.Errorf("config %s: storage path cannot be empty", path)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.DBPath == "" {
		return Config{}, fmt.Errorf("config %s: storage db_path cannot be empty for the sqlite backend", path)
	}
	if c.Audit.Enabled && c.Audit.Path == "" {
		return Config{}, fmt.Errorf("config %s: audit path cannot be empty when audit is enabled", path)
	}
	return c, nil
}
