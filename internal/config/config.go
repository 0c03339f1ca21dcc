// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every setting main needs to wire the server.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"house-rentals.db"`
	DatabaseURL    string `env:"DATABASE_URL"`

	JWTSecret string `env:"JWT_SECRET"`
	// Secure cookies by default; disable only for local development over http.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`
	BcryptCost   int  `env:"BCRYPT_COST" envDefault:"12"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayAPIURL    string `env:"RAZORPAY_API_URL"`
	RentAmountPaise   int64  `env:"RENT_AMOUNT_PAISE" envDefault:"100"`
	RentCurrency      string `env:"RENT_CURRENCY" envDefault:"INR"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET environment variable is required")
	case len(c.JWTSecret) < 32:
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	case c.BcryptCost < 4 || c.BcryptCost > 14:
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	case c.RentAmountPaise <= 0:
		return fmt.Errorf("RENT_AMOUNT_PAISE must be positive, got %d", c.RentAmountPaise)
	case c.RentCurrency == "":
		return errors.New("RENT_CURRENCY must not be empty")
	case c.LoginRatePerMinute <= 0:
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive, got %d", c.LoginRatePerMinute)
	case c.RazorpayKeySecret != "" && c.RazorpayKeyID == "":
		return errors.New("RAZORPAY_KEY_SECRET is set without RAZORPAY_KEY_ID")
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH must not be empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DatabaseDriver)
	}

	if c.RazorpayAPIURL != "" {
		u, err := url.Parse(c.RazorpayAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("RAZORPAY_API_URL is not an absolute URL: %q", c.RazorpayAPIURL)
		}
	}
	return nil
}
