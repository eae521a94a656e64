// Package config loads runtime settings for the reanchor tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jsnanigans/reanchor/pkg/render"
)

// Config is the YAML configuration shared by the CLI and the service.
type Config struct {
	LogLevel     string         `yaml:"log_level"`
	Addr         string         `yaml:"addr"`
	MaxBodyBytes int64          `yaml:"max_body_bytes"`
	Palette      render.Palette `yaml:"palette"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Addr:         ":8080",
		MaxBodyBytes: 1 << 20,
		Palette:      render.DefaultPalette(),
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate reports malformed colors, an unknown log level, an empty address
// or a non-positive body limit.
func (c Config) Validate() error {
	var errs []error
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr: must not be empty"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes: %d is not positive", c.MaxBodyBytes))
	}
	for name, colors := range map[string]render.Colors{
		"equal":     c.Palette.Equal,
		"insert":    c.Palette.Insert,
		"delete":    c.Palette.Delete,
		"highlight": c.Palette.Highlight,
	} {
		for field, value := range map[string]string{"foreground": colors.Foreground, "background": colors.Background} {
			if value != "" && !hexColor.MatchString(value) {
				errs = append(errs, fmt.Errorf("palette.%s.%s: %q is not a #RRGGBB color", name, field, value))
			}
		}
	}
	return errors.Join(errs...)
}

// Logger builds a zap logger at the configured level. Debug level selects
// the development encoder.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
