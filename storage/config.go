package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Provider names.
const (
	ProviderLocal  = "local"
	ProviderMemory = "memory"
)

// DefaultProvider is used when Config.Provider is empty.
const DefaultProvider = ProviderLocal

// Config holds storage configuration.
type Config struct {
	// Provider selects the backend: "local" or "memory".
	Provider string `mapstructure:"provider" json:"provider"`

	// BasePath is the directory the local backend keeps its slots in.
	BasePath string `mapstructure:"base_path" json:"base_path"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLocal:
		if c.BasePath == "" {
			return fmt.Errorf("storage: base_path is required for the local provider")
		}
	case ProviderMemory:
	default:
		return fmt.Errorf("storage: unknown provider %q", c.Provider)
	}
	return nil
}

// DefaultBasePath returns the per-user config directory for sitekit, or
// ./.sitekit when the user config directory cannot be determined.
func DefaultBasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sitekit"
	}
	return filepath.Join(dir, "sitekit")
}
