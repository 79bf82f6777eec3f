package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all newsdesk configuration.
type Config struct {
	DataDir string         `yaml:"data_dir"` // base for relative source paths
	Sources []SourceConfig `yaml:"sources"`
	Server  ServerConfig   `yaml:"server"`
	Output  OutputConfig   `yaml:"output"`
	Log     LogConfig      `yaml:"log"`
}

// SourceConfig describes one input location.
type SourceConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "jsonl" | "json"
	Tag    string `yaml:"tag"`
}

// ServerConfig holds HTTP dashboard settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// OutputConfig holds export destination settings.
type OutputConfig struct {
	Path      string `yaml:"path"`      // empty writes to stdout
	Verbosity string `yaml:"verbosity"` // "minimal", "standard", "full"
	Pretty    bool   `yaml:"pretty"`
	MaxSize   int64  `yaml:"max_size"` // rotation threshold in bytes, 0 disables
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultSources are the three exports the dashboard was built around.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Path: "data/cleansed_data.json", Format: "jsonl", Tag: "cleansed"},
		{Path: "final_cleaned_data.json", Format: "json", Tag: "final"},
		{Path: "cleaned_data_without_null_timestamps.json", Format: "json", Tag: "cleaned"},
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Sources: DefaultSources(),
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Output: OutputConfig{Verbosity: "standard"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the optional YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolvedSources returns the sources with relative paths joined onto DataDir.
func (c Config) ResolvedSources() []SourceConfig {
	out := make([]SourceConfig, len(c.Sources))
	for i, s := range c.Sources {
		if c.DataDir != "" && !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(c.DataDir, s.Path)
		}
		out[i] = s
	}
	return out
}

// Validate checks the configuration for errors.
// Returns all validation errors joined, or nil if valid.
func (c Config) Validate() error {
	var errs []error

	for i, s := range c.Sources {
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("sources[%d]: path is required", i))
		}
		if s.Tag == "" {
			errs = append(errs, fmt.Errorf("sources[%d]: tag is required", i))
		}
		switch s.Format {
		case "jsonl", "json":
		default:
			errs = append(errs, fmt.Errorf("sources[%d]: format must be jsonl or json, got %q", i, s.Format))
		}
	}

	switch c.Output.Verbosity {
	case "minimal", "standard", "full":
	default:
		errs = append(errs, fmt.Errorf("output verbosity must be minimal, standard, or full, got %q", c.Output.Verbosity))
	}
	if c.Output.MaxSize < 0 {
		errs = append(errs, errors.New("output max_size must not be negative"))
	}

	return errors.Join(errs...)
}

func applyEnv(c *Config) {
	c.DataDir = getenv("NEWSDESK_DATA_DIR", c.DataDir)
	c.Server.Addr = getenv("NEWSDESK_ADDR", c.Server.Addr)
	c.Output.Path = getenv("NEWSDESK_OUTPUT", c.Output.Path)
	c.Output.Verbosity = getenv("NEWSDESK_VERBOSITY", c.Output.Verbosity)
	c.Output.Pretty = getenvBool("NEWSDESK_OUTPUT_PRETTY", c.Output.Pretty)
	c.Output.MaxSize = getenvInt64("NEWSDESK_OUTPUT_MAX_SIZE", c.Output.MaxSize)
	c.Log.Level = getenv("NEWSDESK_LOG_LEVEL", c.Log.Level)
	c.Log.JSON = getenvBool("NEWSDESK_LOG_JSON", c.Log.JSON)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
