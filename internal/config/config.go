// Package config loads the headless.json server configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "headless.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = "localhost:3000"
)

// Config is the complete headless.json configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string `json:"addr,omitempty"`

	// Breakpoint is the mobile/desktop width cutover in CSS pixels.
	Breakpoint int `json:"breakpoint,omitempty"`

	// DebounceMs is the viewport debounce interval in milliseconds.
	DebounceMs int `json:"debounceMs,omitempty"`

	// ToastLimit is the maximum toast queue length.
	ToastLimit int `json:"toastLimit,omitempty"`

	// RemoveDelayMs is how long a dismissed toast lingers before
	// removal, in milliseconds.
	RemoveDelayMs int `json:"removeDelayMs,omitempty"`

	// CarouselItems is the default carousel item count for sessions
	// that never send carousel:init.
	CarouselItems int `json:"carouselItems,omitempty"`

	// Metrics enables the Prometheus /metrics endpoint.
	Metrics bool `json:"metrics,omitempty"`
}

// New returns a config populated with defaults.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads ConfigFileName from dir. A missing file yields the
// defaults rather than an error; a malformed file is an error.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Debounce returns the debounce interval as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// RemoveDelay returns the toast removal delay as a duration.
func (c *Config) RemoveDelay() time.Duration {
	return time.Duration(c.RemoveDelayMs) * time.Millisecond
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Breakpoint == 0 {
		c.Breakpoint = 768
	}
	if c.DebounceMs == 0 {
		c.DebounceMs = 250
	}
	if c.ToastLimit == 0 {
		c.ToastLimit = 1
	}
	if c.RemoveDelayMs == 0 {
		c.RemoveDelayMs = 5000
	}
	if c.CarouselItems == 0 {
		c.CarouselItems = 5
	}
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Breakpoint < 1 {
		return fmt.Errorf("breakpoint must be positive, got %d", c.Breakpoint)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounceMs must not be negative, got %d", c.DebounceMs)
	}
	if c.ToastLimit < 1 {
		return fmt.Errorf("toastLimit must be at least 1, got %d", c.ToastLimit)
	}
	if c.RemoveDelayMs < 0 {
		return fmt.Errorf("removeDelayMs must not be negative, got %d", c.RemoveDelayMs)
	}
	if c.CarouselItems < 1 {
		return fmt.Errorf("carouselItems must be at least 1, got %d", c.CarouselItems)
	}
	return nil
}
