package options

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	DefaultProfile  = "hcs200"
	DefaultLogLevel = "info"
	DefaultWorkers  = 4
	DefaultFormat   = FormatJSON
	maxWorkers      = 256
)

// Output formats.
const (
	FormatJSON = "json"
	FormatKV   = "kv"
)

// Config is the optional YAML configuration file. Command line flags override it.
type Config struct {
	Profile  string `yaml:"profile"`
	LogLevel string `yaml:"log_level"`
	Workers  int    `yaml:"workers"`
	Format   string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Profile:  DefaultProfile,
		LogLevel: DefaultLogLevel,
		Workers:  DefaultWorkers,
		Format:   DefaultFormat,
	}
}

// Load reads path on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(contents)
}

// Parse decodes YAML contents on top of the defaults.
func Parse(contents []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(contents, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges and the log level name.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("profile must not be empty")
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", maxWorkers, c.Workers)
	}
	if c.Format != FormatJSON && c.Format != FormatKV {
		return fmt.Errorf("format must be %s or %s, got %q", FormatJSON, FormatKV, c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}
