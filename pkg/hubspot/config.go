package hubspot

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
)

// AuthMode is the authentication approach selected by a Config.
type AuthMode int

// Authentication modes. Exactly one of AuthModeAPIKey and AuthModeBearer is
// active for a valid Config.
const (
	AuthModeNone AuthMode = iota
	AuthModeAPIKey
	AuthModeBearer
)

// String implements fmt.Stringer.
func (m AuthMode) String() string {
	switch m {
	case AuthModeAPIKey:
		return "api_key"
	case AuthModeBearer:
		return "bearer"
	default:
		return "none"
	}
}

// ConfigField names a Config value for Ensure and ConfigurationError.
type ConfigField string

// Config fields that can be required by a request.
const (
	FieldAPIKey       ConfigField = "api_key"
	FieldAccessToken  ConfigField = "access_token"
	FieldRefreshToken ConfigField = "refresh_token"
	FieldClientID     ConfigField = "client_id"
	FieldClientSecret ConfigField = "client_secret"
	FieldPortalID     ConfigField = "portal_id"
	FieldBaseURL      ConfigField = "base_url"
)

// Config holds the settings shared by every request. The client copies it at
// construction and never modifies it afterwards.
type Config struct {
	// BaseURL: API host, e.g. https://api.hubapi.com. Defaults to
	// DefaultBaseURL when empty.
	BaseURL string

	// Authentication (exactly one approach)
	// APIKey: developer API key sent as the hapikey query parameter.
	APIKey string
	// AccessToken: OAuth2 or private-app token sent as a Bearer header.
	AccessToken string
	// RefreshToken: renews AccessToken through the OAuth2 refresh grant.
	// Requires ClientID and ClientSecret.
	RefreshToken string
	// ClientID: OAuth2 client id used with RefreshToken.
	ClientID string
	// ClientSecret: OAuth2 client secret used with RefreshToken.
	ClientSecret string
	// TokenURL: OAuth2 token endpoint. Defaults to the HubSpot endpoint.
	TokenURL string

	// PortalID: account identifier injected into paths containing :portal_id.
	PortalID string

	// Optional configurations
	// ReadTimeout: bounds a whole request/response exchange.
	ReadTimeout time.Duration
	// OpenTimeout: bounds connection establishment.
	OpenTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables verbose HTTP request logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger. Every request is logged through it.
	Logger Logger
	// Interceptors: optional hooks run around every request.
	Interceptors *InterceptorChain
}

// DefaultConfig returns a Config with default hosts and timeouts and no
// credentials.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     constants.DefaultBaseURL,
		TokenURL:    constants.DefaultTokenURL,
		ReadTimeout: constants.DefaultReadTimeout,
		OpenTimeout: constants.DefaultOpenTimeout,
		UserAgent:   constants.DefaultUserAgent,
	}
}

// WithDefaults returns a copy of c with empty fields filled from
// DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	defaults := DefaultConfig()

	if out.BaseURL == "" {
		out.BaseURL = defaults.BaseURL
	}

	if out.TokenURL == "" {
		out.TokenURL = defaults.TokenURL
	}

	if out.ReadTimeout == 0 {
		out.ReadTimeout = defaults.ReadTimeout
	}

	if out.OpenTimeout == 0 {
		out.OpenTimeout = defaults.OpenTimeout
	}

	if out.UserAgent == "" {
		out.UserAgent = defaults.UserAgent
	}

	return &out
}

// AuthMode reports the configured authentication approach.
func (c *Config) AuthMode() AuthMode {
	switch {
	case c.hasBearer():
		return AuthModeBearer
	case c.APIKey != "":
		return AuthModeAPIKey
	default:
		return AuthModeNone
	}
}

func (c *Config) hasBearer() bool {
	return c.AccessToken != "" || c.RefreshToken != ""
}

// Validate checks that exactly one authentication approach is configured
// and that the base URL is usable.
func (c *Config) Validate() error {
	if c.APIKey != "" && c.hasBearer() {
		return &ConfigurationError{Reason: "api_key and access_token are mutually exclusive", Err: ErrAmbiguousAuthMode}
	}

	if c.APIKey == "" && !c.hasBearer() {
		return &ConfigurationError{
			Reason: "no authentication approach",
			Fields: []ConfigField{FieldAPIKey, FieldAccessToken},
			Err:    ErrNoAuthMode,
		}
	}

	if c.RefreshToken != "" {
		err := c.Ensure(FieldClientID, FieldClientSecret)
		if err != nil {
			return fmt.Errorf("%w: %w", err, ErrOAuthClientRequired)
		}
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &ConfigurationError{Reason: "invalid base URL " + c.BaseURL, Fields: []ConfigField{FieldBaseURL}, Err: ErrInvalidBaseURL}
		}
	}

	return nil
}

// Ensure returns a ConfigurationError naming every field that is empty.
func (c *Config) Ensure(fields ...ConfigField) error {
	var missing []ConfigField

	for _, field := range fields {
		if c.Value(field) == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return &ConfigurationError{Reason: "missing required configuration", Fields: missing}
	}

	return nil
}

// Value returns the string value of a field.
func (c *Config) Value(field ConfigField) string {
	switch field {
	case FieldAPIKey:
		return c.APIKey
	case FieldAccessToken:
		return c.AccessToken
	case FieldRefreshToken:
		return c.RefreshToken
	case FieldClientID:
		return c.ClientID
	case FieldClientSecret:
		return c.ClientSecret
	case FieldPortalID:
		return c.PortalID
	case FieldBaseURL:
		return c.BaseURL
	default:
		return ""
	}
}
