// Package config loads the mockauth server configuration from JSON or
// YAML files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beminee/mockauth/pkg/userapi"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// Config is the top-level server configuration.
type Config struct {
	// Listen is the address the demo server binds to.
	Listen string `json:"listen" yaml:"listen"`

	// Upstream is the base URL unmatched requests are forwarded to.
	// Empty means no upstream: unmatched requests get 502.
	Upstream string `json:"upstream,omitempty" yaml:"upstream,omitempty"`

	// DataFile is the path of the JSON store file. Empty means an
	// in-memory store that loses data on exit.
	DataFile string `json:"dataFile,omitempty" yaml:"dataFile,omitempty"`

	Log   LogConfig   `json:"log,omitempty" yaml:"log,omitempty"`
	Delay DelayConfig `json:"delay,omitempty" yaml:"delay,omitempty"`

	// SeedUsers are registered at startup when the stored collection
	// is empty. Ids are assigned in declaration order starting at 1.
	SeedUsers []SeedUser `json:"seedUsers,omitempty" yaml:"seedUsers,omitempty"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// DelayConfig bounds the simulated response delay. Values are Go
// duration strings ("250ms", "1s").
type DelayConfig struct {
	Min string `json:"min,omitempty" yaml:"min,omitempty"`
	Max string `json:"max,omitempty" yaml:"max,omitempty"`
}

// SeedUser is a user record declared in the config file.
type SeedUser struct {
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password" yaml:"password"`
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Rank      string `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen: "127.0.0.1:4000",
		Log:    LogConfig{Level: "info", Format: "text"},
		Delay:  DelayConfig{Min: "250ms", Max: "1s"},
	}
}

// Load reads a Config from a JSON or YAML file. The format is detected
// from the extension (.yaml/.yml for YAML, otherwise JSON). Missing
// fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg := Default()
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	} else {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that cannot be verified by decoding
// alone.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if _, _, err := c.DelayBounds(); err != nil {
		return err
	}
	for idx, su := range c.SeedUsers {
		if su.Username == "" {
			return fmt.Errorf("seed user %d: username is required", idx)
		}
		if su.Rank != "" && !userapi.Rank(su.Rank).Valid() {
			return fmt.Errorf("seed user %q: unknown rank %q", su.Username, su.Rank)
		}
	}
	return nil
}

// DelayBounds parses the configured delay window. Unset values fall
// back to the 250ms and 1s defaults.
func (c *Config) DelayBounds() (min, max time.Duration, err error) {
	min, max = 250*time.Millisecond, time.Second
	if c.Delay.Min != "" {
		min, err = time.ParseDuration(c.Delay.Min)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid delay.min %q: %w", c.Delay.Min, err)
		}
	}
	if c.Delay.Max != "" {
		max, err = time.ParseDuration(c.Delay.Max)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid delay.max %q: %w", c.Delay.Max, err)
		}
	}
	if min < 0 || max < min {
		return 0, 0, fmt.Errorf("invalid delay window [%s, %s)", min, max)
	}
	return min, max, nil
}

// Users converts the seed declarations into user records with ids
// assigned in order. A blank rank defaults to Regular.
func (c *Config) Users() []userapi.User {
	out := make([]userapi.User, 0, len(c.SeedUsers))
	for idx, su := range c.SeedUsers {
		rank := userapi.Rank(su.Rank)
		if su.Rank == "" {
			rank = userapi.RankRegular
		}
		out = append(out, userapi.User{
			ID:        idx + 1,
			Username:  su.Username,
			Password:  su.Password,
			FirstName: su.FirstName,
			LastName:  su.LastName,
			Rank:      rank,
		})
	}
	return out
}
