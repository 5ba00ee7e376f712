package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Session signing and OAuth client configuration
//   - http.go: HTTP server configuration
//   - upstream.go: X API configuration
type AppConfig struct {
	// IsDev controls development mode behavior (secure cookie flag off, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Session signing configuration
	Session SessionConfig

	// OAuth client + upstream X API configuration
	X XConfig `envPrefix:"X_"`

	// HTTP server configuration
	HTTP HTTPConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.X.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// Validate verifies cross-field constraints that env tags cannot express.
// It is called once at startup; an error here is fatal to the process.
func (c *AppConfig) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	return c.X.Validate(c.HTTP.BaseURL)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
