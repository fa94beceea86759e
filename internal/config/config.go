// Package config provides configuration structures and validation for the
// service: HTTP server settings, logging and account-number generation.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. It is validated
// during startup; the process refuses to boot on an invalid configuration.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Accounts    AccountsConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// AccountsConfig contains account-number generation settings
type AccountsConfig struct {
	NumberCountry     string // ISO country code for generated IBANs
	NumberMaxAttempts int    // Uniqueness retries before opening fails
}

// validate checks all configuration values against their minimum
// requirements and reports every violation at once.
func (c *Config) validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if len(c.Accounts.NumberCountry) != 2 {
		validationErrors = append(validationErrors, "ACCOUNT_NUMBER_COUNTRY must be a 2-letter country code")
	}
	if c.Accounts.NumberMaxAttempts <= 0 {
		validationErrors = append(validationErrors, "ACCOUNT_NUMBER_MAX_ATTEMPTS must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
