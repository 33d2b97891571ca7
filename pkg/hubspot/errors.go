package hubspot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Sentinel errors for errors.Is checks.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrRequestFailed         = errors.New("request failed")
	ErrUnresolvedPlaceholder = errors.New("unresolved path placeholder")
	ErrConfigurationInvalid  = errors.New("configuration invalid")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrInvalidParams            = errors.New("invalid params")
	ErrNoAuthMode               = errors.New("authentication approach not provided")
	ErrAmbiguousAuthMode        = errors.New("only one authentication approach may be configured")
	ErrInvalidBaseURL           = errors.New("base URL must be an absolute http(s) URL")
	ErrOAuthClientRequired      = errors.New("client id and secret are required to refresh tokens")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoRefreshToken           = errors.New("no refresh token available")
	ErrUnsupportedObjectType    = errors.New("unsupported object type")
)

// APIError is the error body HubSpot returns with non-success responses.
type APIError struct {
	Status        string `json:"status"        yaml:"status"`
	Message       string `json:"message"       yaml:"message"`
	CorrelationID string `json:"correlationId" yaml:"correlationId"`
	Category      string `json:"category"      yaml:"category"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s (category: %s)", e.Message, e.Category)
	}

	return e.Message
}

// ParseAPIError decodes an HubSpot error body. It returns nil when the body
// does not carry a message.
func ParseAPIError(body []byte) *APIError {
	var apiErr APIError

	err := json.Unmarshal(body, &apiErr)
	if err != nil || apiErr.Message == "" {
		return nil
	}

	return &apiErr
}

// NotFoundError is returned when HubSpot answers 404.
type NotFoundError struct {
	Response *Response
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return describe(ErrNotFound, e.Response, nil)
}

// Unwrap allows errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// RequestError is returned for any other non-success status, and for
// transport failures where Response is nil.
type RequestError struct {
	Response *Response
	Err      error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return describe(ErrRequestFailed, e.Response, e.Err)
}

// Unwrap allows errors.Is against ErrRequestFailed and the transport cause.
func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequestFailed}
	}

	return []error{ErrRequestFailed, e.Err}
}

// StatusCode returns the response status, or 0 when no response arrived.
func (e *RequestError) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// UnresolvedPlaceholderError reports path placeholders with no parameter.
type UnresolvedPlaceholderError struct {
	Path    string
	Missing []string
}

// Error implements the error interface.
func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("%s: %s in %q", ErrUnresolvedPlaceholder, ":"+strings.Join(e.Missing, ", :"), e.Path)
}

// Unwrap allows errors.Is(err, ErrUnresolvedPlaceholder).
func (e *UnresolvedPlaceholderError) Unwrap() error {
	return ErrUnresolvedPlaceholder
}

// ConfigurationError reports an invalid or incomplete Config.
type ConfigurationError struct {
	Reason string
	Fields []ConfigField
	Err    error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := ErrConfigurationInvalid.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			names = append(names, string(f))
		}

		msg += " (" + strings.Join(names, ", ") + ")"
	}

	return msg
}

// Unwrap allows errors.Is against ErrConfigurationInvalid and the cause.
func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfigurationInvalid}
	}

	return []error{ErrConfigurationInvalid, e.Err}
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRequestError checks if the error is a failed request.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// IsConfigurationError checks if the error comes from the configuration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfigurationInvalid)
}

// ResponseOf returns the HTTP response carried by a NotFoundError or
// RequestError anywhere in err's chain.
func ResponseOf(err error) *Response {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Response
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Response
	}

	return nil
}

func describe(kind error, resp *Response, cause error) string {
	if resp == nil {
		if cause != nil {
			return fmt.Sprintf("%s: %v", kind, cause)
		}

		return kind.Error()
	}

	msg := fmt.Sprintf("%s: %s %s returned %d", kind, resp.Method, resp.URL, resp.StatusCode)

	if apiErr := ParseAPIError(resp.Body); apiErr != nil {
		msg += ": " + apiErr.Error()
	}

	return msg
}
