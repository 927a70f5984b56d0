// Package config loads configuration from a YAML file, an optional .env file
// and prefixed environment variables, in that order of precedence (lowest
// first), using viper and godotenv.
//
//	var cfg site.Config
//	err := config.LoadConfig("sitectl", &cfg, config.WithEnvPrefix("SITEKIT"))
//
// SITEKIT_API_BASE_URL sets api.base_url; nested keys are matched by trying
// each way of splitting the variable name on underscores.
package config
