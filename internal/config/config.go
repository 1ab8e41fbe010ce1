package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project-level config file looked up in the project dir.
const FileName = ".djgen.yaml"

// Environment overrides, applied on top of the config file.
const (
	EnvPython    = "DJGEN_PYTHON"
	EnvFormatter = "DJGEN_FORMATTER"
)

// Config holds project settings for model generation.
type Config struct {
	Python    string `yaml:"python"`          // Interpreter command with Django installed
	Settings  string `yaml:"django_settings"` // Fallback DJANGO_SETTINGS_MODULE
	Formatter string `yaml:"formatter"`       // Formatter command run on models.py
	Format    *bool  `yaml:"format"`          // False disables the formatter
	Timeout   int    `yaml:"timeout"`         // Seconds allowed for Django introspection
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	format := true
	return &Config{
		Python:    "python",
		Formatter: "black -q",
		Format:    &format,
		Timeout:   60,
	}
}

// Load builds the config for projectDir: .env is loaded into the process
// environment (existing variables win), then defaults are overlaid with
// the YAML file and finally with DJGEN_* variables.
//
// path selects the YAML file; when empty, projectDir/.djgen.yaml is used if
// it exists. An explicit path that does not exist is an error.
func Load(projectDir, path string) (*Config, error) {
	if err := loadDotEnv(projectDir); err != nil {
		return nil, err
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectDir, FileName)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
		cfg.merge(&file)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if v := strings.TrimSpace(os.Getenv(EnvPython)); v != "" {
		cfg.Python = v
	}
	if v, ok := os.LookupEnv(EnvFormatter); ok {
		cfg.Formatter = strings.TrimSpace(v)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FormatterCommand returns the formatter to run, or "" when disabled.
func (c *Config) FormatterCommand() string {
	if c.Format != nil && !*c.Format {
		return ""
	}
	return c.Formatter
}

func (c *Config) merge(o *Config) {
	if o.Python != "" {
		c.Python = o.Python
	}
	if o.Settings != "" {
		c.Settings = o.Settings
	}
	if o.Formatter != "" {
		c.Formatter = o.Formatter
	}
	if o.Format != nil {
		c.Format = o.Format
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("config: python command is empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must be positive, got %d", c.Timeout)
	}
	return nil
}

func loadDotEnv(projectDir string) error {
	path := filepath.Join(projectDir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}
