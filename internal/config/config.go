package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Analysis AnalysisConfig `toml:"analysis"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// BaseURL is advertised to SSE clients as the prefix of the message endpoint.
	// Empty means relative URLs.
	BaseURL string `toml:"base_url"`
	// MessageRateLimit caps POST /message requests per client IP per minute.
	// Zero disables the limit.
	MessageRateLimit int `toml:"message_rate_limit"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	// File receives one JSON line per tool call. Empty means stdout.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type AnalysisConfig struct {
	Root   string `toml:"root"`
	Binary string `toml:"binary"`
}

func DefaultConfig() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{
		Server: ServerConfig{
			Addr:             ":8080",
			MessageRateLimit: 600,
		},
		Database: DatabaseConfig{
			Path: "data/toolhost.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Analysis: AnalysisConfig{
			Root:   root,
			Binary: "node_modules/.bin/pyright",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		if strings.Contains(v, ":") {
			c.Server.Addr = v
		} else {
			c.Server.Addr = ":" + v
		}
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("DB_PATH"); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup("PYRIGHT_ROOT"); ok && v != "" {
		c.Analysis.Root = v
	}
	if v, ok := lookup("PYRIGHT_BIN"); ok && v != "" {
		c.Analysis.Binary = v
	}
}
