package milvus

import (
	"errors"
	"fmt"
	"time"
)

// Config represents the configuration for Milvus client
type Config struct {
	// Connection settings
	Address  string `mapstructure:"address"`  // Milvus server address (e.g., "localhost:19530")
	Username string `mapstructure:"username"` // Username for authentication (optional)
	Password string `mapstructure:"password"` // Password for authentication (optional)
	APIKey   string `mapstructure:"api_key"`  // API Key for cloud service (optional)

	// Database settings
	Database string `mapstructure:"database"` // Database name (optional, default is "default")

	// Timeout settings
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Retry settings
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("milvus: address is required")
	}

	if c.APIKey != "" && (c.Username != "" || c.Password != "") {
		return errors.New("milvus: cannot use both API key and username/password authentication")
	}

	if c.DialTimeout < 0 {
		return errors.New("milvus: dial timeout must be non-negative")
	}

	if c.RequestTimeout < 0 {
		return errors.New("milvus: request timeout must be non-negative")
	}

	if c.MaxRetries < 0 {
		return errors.New("milvus: max retries must be non-negative")
	}

	if c.RetryDelay < 0 {
		return errors.New("milvus: retry delay must be non-negative")
	}

	return nil
}

// SetDefaults sets default values for unspecified configuration fields
func (c *Config) SetDefaults() {
	if c.Database == "" {
		c.Database = "default"
	}

	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultTimeout
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultRetries
	}

	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
}

// String returns a string representation of the configuration (hides sensitive data)
func (c *Config) String() string {
	password := ""
	if c.Password != "" {
		password = "***"
	}

	apiKey := ""
	if c.APIKey != "" {
		apiKey = "***"
	}

	return fmt.Sprintf("Config{Address: %s, Username: %s, Password: %s, APIKey: %s, Database: %s}",
		c.Address, c.Username, password, apiKey, c.Database)
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Address:        "localhost:19530",
		Database:       "default",
		DialTimeout:    10 * time.Second,
		RequestTimeout: DefaultTimeout,
		MaxRetries:     DefaultRetries,
		RetryDelay:     DefaultRetryDelay,
	}
}
