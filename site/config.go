package site

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/sitekit/config"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/observability"
	"github.com/kbukum/sitekit/storage"
	"github.com/kbukum/sitekit/theme"
)

// DefaultBaseURL is the public site API.
const DefaultBaseURL = "https://win24-assignment.azurewebsites.net"

// DefaultLoadingTime is the simulated delay the site uses for its loaders.
const DefaultLoadingTime = 5 * time.Second

// Config is the complete sitectl configuration.
type Config struct {
	Base          config.BaseConfig    `yaml:"base" mapstructure:"base"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	API           APIConfig            `yaml:"api" mapstructure:"api"`
	Theme         ThemeConfig          `yaml:"theme" mapstructure:"theme"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills in every section.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.API.ApplyDefaults()
	c.Theme.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Base.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Base.Version
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Base.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Theme.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// APIConfig configures the remote API client.
type APIConfig struct {
	BaseURL         string            `yaml:"base_url" mapstructure:"base_url"`
	Token           string            `yaml:"token" mapstructure:"token"`
	APIKey          string            `yaml:"api_key" mapstructure:"api_key"`
	APIKeyHeader    string            `yaml:"api_key_header" mapstructure:"api_key_header"`
	Timeout         time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	Headers         map[string]string `yaml:"headers" mapstructure:"headers"`
	SimulateLoading bool              `yaml:"simulate_loading" mapstructure:"simulate_loading"`
	LoadingTime     time.Duration     `yaml:"loading_time" mapstructure:"loading_time"`
}

// ApplyDefaults fills in zero-value fields.
func (c *APIConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.LoadingTime == 0 {
		c.LoadingTime = DefaultLoadingTime
	}
}

// Validate checks the API configuration.
func (c *APIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL (got: %q)", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("api.timeout must be non-negative (got: %s)", c.Timeout)
	}
	if c.LoadingTime < 0 {
		return fmt.Errorf("api.loading_time must be non-negative (got: %s)", c.LoadingTime)
	}
	if c.Token != "" && c.APIKey != "" {
		return fmt.Errorf("api.token and api.api_key are mutually exclusive")
	}
	return nil
}

// ThemeConfig configures where the theme is persisted.
type ThemeConfig struct {
	Key     string         `yaml:"key" mapstructure:"key"`
	Storage storage.Config `yaml:"storage" mapstructure:"storage"`
}

// ApplyDefaults fills in zero-value fields.
func (c *ThemeConfig) ApplyDefaults() {
	if c.Key == "" {
		c.Key = theme.DefaultKey
	}
	c.Storage.ApplyDefaults()
}

// Validate checks the theme configuration.
func (c *ThemeConfig) Validate() error {
	if err := storage.ValidateKey(c.Key); err != nil {
		return fmt.Errorf("theme.key: %w", err)
	}
	return c.Storage.Validate()
}

// LoadConfig reads configuration for name, applies defaults and validates it.
func LoadConfig(name string, opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
