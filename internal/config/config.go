// Package config loads the statusscreen configuration file.
package config

import (
	"os"

	"github.com/flavioheleno/statusscreen"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Screen  ScreenConfig  `yaml:"screen"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig selects and wires the physical display.
type DisplayConfig struct {
	// i2c, spi or terminal
	Backend string `yaml:"backend"`
	// Bus name as known to periph, empty for the first one
	Bus string `yaml:"bus"`
	// Data/Command pin, SPI only
	DC string `yaml:"dc"`
	// Optional reset pin
	RST     string `yaml:"rst"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Rotated bool   `yaml:"rotated"`
}

// ScreenConfig selects the layout and presentation.
type ScreenConfig struct {
	Layout   string `yaml:"layout"`
	Capacity int    `yaml:"capacity"` // log lines, 0 for the layout's default
	FixLabel string `yaml:"fix_label"`
	Stats    string `yaml:"stats"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Backends understood by the CLI.
const (
	BackendI2C      = "i2c"
	BackendSPI      = "spi"
	BackendTerminal = "terminal"
)

// Default returns the configuration of a 128x64 SSD1306 on I²C.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Backend: BackendI2C,
			Width:   128,
			Height:  64,
		},
		Screen: ScreenConfig{
			Layout:   "default",
			FixLabel: "plain",
			Stats:    "encryption",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads filename on top of the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	return cfg, nil
}

// Validate checks every setting can be resolved.
func (c *Config) Validate() error {
	switch c.Display.Backend {
	case BackendI2C, BackendTerminal:
	case BackendSPI:
		if c.Display.DC == "" {
			return errors.New("config: spi backend needs a dc pin")
		}
	default:
		return errors.Errorf("config: unknown backend %q", c.Display.Backend)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.New("config: display width and height must be positive")
	}
	if c.Screen.Capacity < 0 {
		return errors.New("config: log capacity must not be negative")
	}
	opts, err := c.ScreenOpts()
	if err != nil {
		return err
	}
	if fit := opts.Layout.MaxLines(); c.Screen.Capacity > fit {
		return errors.Errorf("config: log capacity %d exceeds the %d lines the %s layout holds at %dx%d",
			c.Screen.Capacity, fit, c.Screen.Layout, c.Display.Width, c.Display.Height)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// ScreenOpts resolves the screen section into statusscreen options.
func (c *Config) ScreenOpts() (*statusscreen.Opts, error) {
	layout, err := statusscreen.LayoutByName(c.Screen.Layout, c.Display.Width, c.Display.Height)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	fix, err := statusscreen.FixLabelByName(c.Screen.FixLabel)
	if err != nil {
		return nil, err
	}
	stats, err := statusscreen.StatsByName(c.Screen.Stats)
	if err != nil {
		return nil, err
	}
	return &statusscreen.Opts{
		Layout:   &layout,
		Capacity: c.Screen.Capacity,
		FixLabel: fix,
		Stats:    stats,
	}, nil
}
