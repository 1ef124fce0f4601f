package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrInvalid reports a config that cannot be used to run the bridge.
var ErrInvalid = errors.New("invalid config")

// Config represents the bridge configuration.
type Config struct {
	URL            string            `json:"url" yaml:"url" mapstructure:"url"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers"`
	Timeout        time.Duration     `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
	ConnectTimeout time.Duration     `json:"connectTimeout,omitempty" yaml:"connectTimeout,omitempty" mapstructure:"connectTimeout"`
	Auth           *Auth             `json:"auth,omitempty" yaml:"auth,omitempty" mapstructure:"auth"`
}

// Auth enables the OAuth2 transport.
type Auth struct {
	OAuth2ConfigURL string `json:"oauth2ConfigURL" yaml:"oauth2ConfigURL" mapstructure:"oauth2ConfigURL"`
	EncryptionKey   string `json:"encryptionKey,omitempty" yaml:"encryptionKey,omitempty" mapstructure:"encryptionKey"`
	TokenCache      string `json:"tokenCache,omitempty" yaml:"tokenCache,omitempty" mapstructure:"tokenCache"`
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: 'url' is required", ErrInvalid)
	}
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("%w: url %q: %v", ErrInvalid, c.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: url %q must use http or https", ErrInvalid, c.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: url %q has no host", ErrInvalid, c.URL)
	}
	if c.Timeout < 0 || c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalid)
	}
	if c.Auth != nil && c.Auth.OAuth2ConfigURL == "" {
		return fmt.Errorf("%w: 'auth.oauth2ConfigURL' is required when auth is set", ErrInvalid)
	}
	return nil
}
