package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings.
// Priority, highest first: command line flags, environment, config file, defaults.
type Config struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
	Verbose  bool   `yaml:"verbose"`
}

const (
	EnvEndpoint = "CURALINK_ENDPOINT"
	EnvDatabase = "CURALINK_DB"
)

// DefaultConfig returns defaults rooted at paths
func DefaultConfig(paths DataPaths) Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Database: paths.DatabasePath(),
	}
}

// LoadConfig reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string, paths DataPaths) (Config, error) {
	cfg := DefaultConfig(paths)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return cfg, &ParseError{Source: "config", Key: path, Err: err}
			}
			cfg.merge(fileCfg)
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.merge(Config{
		Endpoint: os.Getenv(EnvEndpoint),
		Database: os.Getenv(EnvDatabase),
	})
	return cfg, nil
}

func (c *Config) merge(other Config) {
	if other.Endpoint != "" {
		c.Endpoint = other.Endpoint
	}
	if other.Database != "" {
		c.Database = other.Database
	}
	if other.Verbose {
		c.Verbose = true
	}
}
