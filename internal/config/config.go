// Package config loads the navigation settings of the studio front end.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the default name of the configuration file.
const FileName = "navrouter.toml"

// Config holds the navigation settings.
type Config struct {
	// BasePath is the path prefix the app is served under, e.g. "/studio".
	BasePath string `toml:"base_path"`

	// UseFragment switches from path URLs to "#/path" URLs for static hosting.
	UseFragment bool `toml:"use_fragment"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// StartPath is where navigation starts when there is no browser location.
	StartPath string `toml:"start_path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BasePath:  "/",
		LogLevel:  "info",
		StartPath: "/",
	}
}

// Load reads the file at p on top of Default.
func Load(p string) (Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", p, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values.
func (c Config) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("base_path %q must start with /", c.BasePath))
	}
	if !strings.HasPrefix(c.StartPath, "/") {
		errs = append(errs, fmt.Errorf("start_path %q must start with /", c.StartPath))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CleanBasePath returns BasePath cleaned, "/" meaning no prefix.
func (c Config) CleanBasePath() string {
	return path.Clean("/" + c.BasePath)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
