// Package config resolves the server settings once at startup. Sources
// apply in order: built-in defaults, an optional YAML file, environment
// variables, then command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alucardeht/bareos-mcp/internal/bconsole"
	"github.com/alucardeht/bareos-mcp/internal/logger"
	"github.com/alucardeht/bareos-mcp/internal/tools"
)

const (
	EnvConfigFile     = "BAREOS_MCP_CONFIG"
	EnvBconsolePath   = "BCONSOLE_PATH"
	EnvBconsoleConfig = "BCONSOLE_CONFIG"
	EnvLogLevel       = "BAREOS_MCP_LOG_LEVEL"
)

type BconsoleConfig struct {
	Path     string `yaml:"path"`
	Config   string `yaml:"config"`
	Encoding string `yaml:"encoding"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ToolsConfig struct {
	// Enabled holds glob patterns over tool names.
	Enabled []string `yaml:"enabled"`
}

type Config struct {
	Bconsole BconsoleConfig `yaml:"bconsole"`
	Log      LogConfig      `yaml:"log"`
	Tools    ToolsConfig    `yaml:"tools"`
}

func Default() *Config {
	return &Config{
		Bconsole: BconsoleConfig{
			Path:     bconsole.DefaultBinary,
			Encoding: bconsole.EncodingUTF8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tools: ToolsConfig{
			Enabled: []string{"*"},
		},
	}
}

// Load builds the configuration from defaults, the file at path (or the
// one named by BAREOS_MCP_CONFIG when path is empty) and the environment.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()

	if path == "" {
		path = getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(getenv)
	return cfg, nil
}

// LoadFile overlays the YAML file onto c. Keys missing from the file keep
// their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvBconsolePath); v != "" {
		c.Bconsole.Path = v
	}
	if v := getenv(EnvBconsoleConfig); v != "" {
		c.Bconsole.Config = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// SetEnabledTools parses a comma-separated pattern list, as given on the
// command line.
func (c *Config) SetEnabledTools(list string) {
	var patterns []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	c.Tools.Enabled = patterns
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Bconsole.Path) == "" {
		errs = append(errs, errors.New("bconsole.path must not be empty"))
	}
	if _, err := bconsole.NewDecoder(c.Bconsole.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("bconsole.encoding: %w", err))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !logger.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}
	if _, err := tools.NewFilter(c.Tools.Enabled); err != nil {
		errs = append(errs, fmt.Errorf("tools.enabled: %w", err))
	}

	return errors.Join(errs...)
}
