package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials      = errors.New("no credentials configured, use 'hubspot login' or pass --api-key/--access-token")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrSecretNotDisplayed = errors.New("secret values cannot be set via config command, use 'hubspot login'")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Argument errors.
var (
	ErrInvalidID          = errors.New("invalid numeric id")
	ErrInvalidOutput      = errors.New("invalid output format")
	ErrInvalidKeyValue    = errors.New("expected key=value")
	ErrInvalidObjectType  = errors.New("object type must be deals or companies")
	ErrNATSURLRequired    = errors.New("--nats-url is required")
	ErrJQNoOutput         = errors.New("jq expression produced no output")
	ErrRelaySubjectNeeded = errors.New("--subject is required")
)
