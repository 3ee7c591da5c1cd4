// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// BookingConfig carries the operating window and duration cap for
// reservations. The window is fixed club policy today but kept in config
// rather than hardcoded.
type BookingConfig struct {
	OpensAt        string `yaml:"opens_at"`
	ClosesAt       string `yaml:"closes_at"`
	MaxDurationMin int    `yaml:"max_duration_minutes"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		SeedData    bool   `yaml:"seed_data"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Booking BookingConfig `yaml:"booking"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.OpensAt == "" {
		c.Booking.OpensAt = "10:00"
	}
	if c.Booking.ClosesAt == "" {
		c.Booking.ClosesAt = "22:00"
	}
	if c.Booking.MaxDurationMin == 0 {
		c.Booking.MaxDurationMin = 120
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required for sqlite")
	}

	if _, err := time.Parse("15:04", c.Booking.OpensAt); err != nil {
		return fmt.Errorf("booking opens_at must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Booking.ClosesAt); err != nil {
		return fmt.Errorf("booking closes_at must be HH:MM: %w", err)
	}
	if c.Booking.MaxDurationMin < 0 {
		return fmt.Errorf("booking max_duration_minutes must be positive")
	}

	return nil
}
