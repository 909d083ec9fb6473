package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Storage backend names (duplicated from reminder package to avoid import cycle)
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// REMINDERS_STORAGE_DATA_FILE=~/todo.json.
const EnvPrefix = "REMINDERS_"

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	UI      UIConfig      `koanf:"ui"`
	MCP     MCPConfig     `koanf:"mcp"`
}

type StorageConfig struct {
	DataFile string `koanf:"data_file"` // Loaded on start and used as the initial save target
	Backend  string `koanf:"backend"`   // auto, json or sqlite
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
	ShowCreated   bool `koanf:"show_created"`   // Show the creation date column in /list
	RenderDetails bool `koanf:"render_details"` // Render details as markdown in /show
}

type MCPConfig struct {
	Autosave bool `koanf:"autosave"` // Save after every change made through a tool
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// REMINDERS_STORAGE_DATA_FILE -> storage.data_file
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.DataFile = expandPath(cfg.Storage.DataFile)

	return &cfg, nil
}

// envKey maps an environment variable name to a config key. The first
// underscore after the prefix separates the section from the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + key
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendAuto, BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s)",
			c.Storage.Backend, BackendAuto, BackendJSON, BackendSQLite)
	}

	if c.Storage.DataFile == "" {
		return fmt.Errorf("storage data_file is required")
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
