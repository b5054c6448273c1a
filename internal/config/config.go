package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Config is the parsed ~/.rexpress/config.ini.
type Config struct {
	AI      AIConfig      `ini:"ai"`
	Storage StorageConfig `ini:"storage"`
	Regex   RegexConfig   `ini:"regex"`
	UI      UIConfig      `ini:"ui"`

	path string `ini:"-"`
}

type AIConfig struct {
	APIKey            string        `ini:"api_key"`
	BaseURL           string        `ini:"base_url"`
	Model             string        `ini:"model"`
	Timeout           time.Duration `ini:"timeout"`
	ProbeWait         time.Duration `ini:"probe_wait"`
	RequestsPerMinute int           `ini:"requests_per_minute"`
}

type StorageConfig struct {
	Backend string `ini:"backend"`
	Path    string `ini:"path"`
}

type RegexConfig struct {
	Engine string `ini:"engine"`
}

type UIConfig struct {
	Theme string `ini:"theme"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		AI: AIConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30 * time.Second,
			ProbeWait: time.Second,
		},
		Storage: StorageConfig{Backend: "file"},
		Regex:   RegexConfig{Engine: "re2"},
	}
}

// DefaultPath returns the config file location, honouring REXPRESS_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv("REXPRESS_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rexpress", "config.ini"), nil
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = p
	}

	file, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := Default()
	if err := file.MapTo(cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg.path = path

	cfg.applyEnv()
	return cfg, nil
}

// Path is the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("REXPRESS_BASE_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("REXPRESS_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("REXPRESS_STORAGE"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
}

// Save writes c back to its file, creating the directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	file := ini.Empty()
	if err := ini.ReflectFrom(file, c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return file.SaveTo(c.path)
}
