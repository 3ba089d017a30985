package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application config.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Dataset DatasetConfig `koanf:"dataset"`
	Export  ExportConfig  `koanf:"export"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

type DatasetConfig struct {
	Path        string `koanf:"path"`
	LoadTimeout string `koanf:"load_timeout"` // parsed and validated on startup
	Cache       bool   `koanf:"cache"`
}

type ExportConfig struct {
	MaxRows int `koanf:"max_rows"`
}

// EffectiveLoadTimeout returns the parsed dataset load timeout. Validate has
// already checked the string, so a parse failure here means zero (no timeout).
func (c DatasetConfig) EffectiveLoadTimeout() time.Duration {
	d, err := time.ParseDuration(c.LoadTimeout)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if c.Dataset.LoadTimeout != "" {
		d, err := time.ParseDuration(c.Dataset.LoadTimeout)
		if err != nil {
			return fmt.Errorf("invalid dataset.load_timeout %q: %w", c.Dataset.LoadTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("dataset.load_timeout must be >= 0")
		}
	}

	if c.Export.MaxRows < 0 {
		return fmt.Errorf("export.max_rows must be >= 0")
	}

	return nil
}

// Load parses config from defaults + file + env and validates it.
// An empty configPath skips the file layer.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":          8080,
		"server.host":          "0.0.0.0",
		"server.mode":          "release",
		"dataset.path":         "./data/sales_data.csv",
		"dataset.load_timeout": "5s",
		"dataset.cache":        false,
		"export.max_rows":      100000,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SALESBOARD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SALESBOARD_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
