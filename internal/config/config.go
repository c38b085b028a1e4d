package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/pricebook-cli/internal/registry"
	"github.com/KaramelBytes/pricebook-cli/internal/utils"
)

// Global configuration structure.
type Global struct {
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	RegistryFile string `mapstructure:"registry_file" yaml:"registry_file,omitempty"`
	SniffBytes   int    `mapstructure:"sniff_bytes" yaml:"sniff_bytes"`

	// Layout
	SpanThreshold int `mapstructure:"span_threshold" yaml:"span_threshold"`
	SpanWidth     int `mapstructure:"span_width" yaml:"span_width"`

	// Browser zoom levels; a level is the width of a single-column cell
	ZoomMin     int `mapstructure:"zoom_min" yaml:"zoom_min"`
	ZoomMax     int `mapstructure:"zoom_max" yaml:"zoom_max"`
	ZoomStep    int `mapstructure:"zoom_step" yaml:"zoom_step"`
	ZoomDefault int `mapstructure:"zoom_default" yaml:"zoom_default"`
}

// Dir returns ~/.pricebook.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".pricebook"), nil
}

// DefaultDataDir returns ~/.pricebook/data.
func DefaultDataDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pricebook/config.yaml, creating the directory if necessary.
// A data_dir equal to the default is left out of the file.
func Save(c *Global, cfgFile string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	out := *c
	if out.DataDir == filepath.Join(dir, "data") {
		out.DataDir = ""
	}
	b, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PRICEBOOK")
	v.AutomaticEnv()

	v.SetDefault("data_dir", "")
	v.SetDefault("registry_file", "")
	v.SetDefault("sniff_bytes", 1024)
	v.SetDefault("span_threshold", 8)
	v.SetDefault("span_width", 4)
	v.SetDefault("zoom_min", 8)
	v.SetDefault("zoom_max", 26)
	v.SetDefault("zoom_step", 2)
	v.SetDefault("zoom_default", 14)

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.DataDir == "" {
		if c.DataDir, err = DefaultDataDir(); err != nil {
			return nil, err
		}
	}
	if c.DataDir, err = utils.ExpandHome(c.DataDir); err != nil {
		return nil, err
	}
	return &c, nil
}

// RegistryPath resolves the registry file, defaulting to the data directory.
func (c *Global) RegistryPath() (string, error) {
	if c.RegistryFile == "" {
		return filepath.Join(c.DataDir, registry.DefaultFileName), nil
	}
	return utils.ExpandHome(c.RegistryFile)
}

// Validate checks that numeric settings are usable.
func (c *Global) Validate() error {
	switch {
	case c.SniffBytes <= 0:
		return fmt.Errorf("sniff_bytes must be positive, got %d", c.SniffBytes)
	case c.SpanWidth < 1:
		return fmt.Errorf("span_width must be at least 1, got %d", c.SpanWidth)
	case c.ZoomStep <= 0:
		return fmt.Errorf("zoom_step must be positive, got %d", c.ZoomStep)
	case c.ZoomMin > c.ZoomMax:
		return fmt.Errorf("zoom_min (%d) exceeds zoom_max (%d)", c.ZoomMin, c.ZoomMax)
	case c.ZoomDefault < c.ZoomMin || c.ZoomDefault > c.ZoomMax:
		return fmt.Errorf("zoom_default (%d) outside [%d, %d]", c.ZoomDefault, c.ZoomMin, c.ZoomMax)
	}
	return nil
}
