package local

import "fmt"

// Config holds local filesystem store configuration.
type Config struct {
	// BasePath is the directory that holds one file per key.
	BasePath string `mapstructure:"base_path" json:"base_path"`
}

// Validate checks that the local configuration is valid.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("local: base_path is required")
	}
	return nil
}
