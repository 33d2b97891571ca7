package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HubSpot hosts.
const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.hubapi.com"

	// FormsBaseURL receives form submissions.
	FormsBaseURL = "https://forms.hubspot.com"

	// TrackingBaseURL receives behavioral event hits.
	TrackingBaseURL = "https://track.hubspot.com"

	// DefaultTokenURL is the OAuth2 token endpoint.
	DefaultTokenURL = "https://api.hubapi.com/oauth/v1/token"
)

// HTTP and network timeouts.
const (
	// DefaultReadTimeout bounds a whole request/response exchange.
	DefaultReadTimeout = 30 * time.Second

	// DefaultOpenTimeout bounds connection establishment.
	DefaultOpenTimeout = 10 * time.Second

	// TokenExpiryLeeway refreshes OAuth2 tokens slightly before they expire.
	TokenExpiryLeeway = 30 * time.Second
)

// Query and auth parameter names.
const (
	// APIKeyParam carries the API key in the query string.
	APIKeyParam = "hapikey"

	// PortalIDParam is the account identifier placeholder.
	PortalIDParam = "portal_id"

	// BatchParamPrefix marks parameters renamed to lowerCamel on the wire.
	BatchParamPrefix = "batch_"
)

// HTTP headers and content types.
const (
	// HeaderAuthorization carries the bearer token.
	HeaderAuthorization = "Authorization"

	// HeaderContentType is the request body media type header.
	HeaderContentType = "Content-Type"

	// HeaderRequestID correlates client logs with HubSpot support requests.
	HeaderRequestID = "X-Request-Id"

	// ContentTypeJSON is used for JSON bodies.
	ContentTypeJSON = "application/json"

	// ContentTypeForm is used for form submissions.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// DefaultUserAgent is sent unless the config overrides it.
	DefaultUserAgent = "hubspot-client-go/1.0"
)

// Association definition ids (HUBSPOT_DEFINED category).
const (
	ContactToCompanyDefinition = 1
	CompanyToContactDefinition = 2
	DealToContactDefinition    = 3
	ContactToDealDefinition    = 4
	DealToCompanyDefinition    = 5
	CompanyToDealDefinition    = 6
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 20

	// MaxLogBodySize truncates bodies written to logs.
	MaxLogBodySize = 4096
)

// Blog post states.
const (
	BlogPostStateDraft     = "DRAFT"
	BlogPostStatePublished = "PUBLISHED"
	BlogPostStateScheduled = "SCHEDULED"
)

// Engagement types.
const (
	EngagementTypeNote = "NOTE"
	EngagementTypeCall = "CALL"

	// DefaultCallStatus is used when a call engagement has no explicit status.
	DefaultCallStatus = "COMPLETED"
)

// Format constants.
const (
	// OutputFormatJSON selects JSON output.
	OutputFormatJSON = "json"

	// OutputFormatYAML selects YAML output.
	OutputFormatYAML = "yaml"

	// OutputFormatTable selects table output.
	OutputFormatTable = "table"

	// JSONIndentSize is the indentation for JSON and YAML output.
	JSONIndentSize = 2
)

// Keyring identifiers.
const (
	// KeyringService namespaces stored credentials.
	KeyringService = "hubspot-cli"

	// KeyringAPIKeyUser is the keyring entry holding the API key.
	KeyringAPIKeyUser = "api_key"
)
