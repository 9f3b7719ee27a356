package oauth2

import (
	"errors"
	"time"
)

const (
	defaultIssuerURL     = "http://localhost:5001/v1/token"
	defaultTokenLifetime = 300 * time.Second
)

// Config configures the token service. One signing algorithm (HS256), one
// shared secret.
type Config struct {
	// IssuerURL is the "iss" claim identifying this service.
	IssuerURL string `yaml:"issuer_url" mapstructure:"issuer_url"`

	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TokenLifetime is the validity window of issued tokens.
	TokenLifetime time.Duration `yaml:"token_lifetime" mapstructure:"token_lifetime"`

	// DefaultScope is granted to every issued token; scope is not
	// request-scoped.
	DefaultScope []string `yaml:"default_scope" mapstructure:"default_scope"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.IssuerURL == "" {
		c.IssuerURL = defaultIssuerURL
	}
	if c.TokenLifetime == 0 {
		c.TokenLifetime = defaultTokenLifetime
	}
	if len(c.DefaultScope) == 0 {
		c.DefaultScope = []string{"current_time", "epoch_time"}
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("oauth2: secret is required")
	}
	if c.TokenLifetime <= 0 {
		return errors.New("oauth2: token lifetime must be positive")
	}
	return nil
}
