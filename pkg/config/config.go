package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the registry configuration
type Config struct {
	// DomainName is the public domain served in /config.json. The
	// registry cannot hand out download URLs without it.
	DomainName string `yaml:"domain_name"`

	// ListenAddr is the HTTP listen address
	ListenAddr string `yaml:"listen_addr"`

	// DatabasePath is the BoltDB file holding all index records
	DatabasePath string `yaml:"database_path"`

	// CratesDir is the base directory for stored crate archives
	CratesDir string `yaml:"crates_dir"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// LogJSON switches log output to JSON
	LogJSON bool `yaml:"log_json"`

	// AllowAnonymous lets management requests through without an
	// identity token. Local development only.
	AllowAnonymous bool `yaml:"allow_anonymous"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		ListenAddr:   ":3026",
		DatabasePath: "/var/lib/raktar/raktar.db",
		CratesDir:    "/var/lib/raktar/crates",
		LogLevel:     "info",
	}
}

// Load builds the effective configuration: defaults, then the optional
// YAML file, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DOMAIN_NAME"); v != "" {
		c.DomainName = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("CRATES_DIR"); v != "" {
		c.CratesDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
