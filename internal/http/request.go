package http

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// APIKeyMode controls the hapikey query parameter for one request.
type APIKeyMode int

const (
	// APIKeyDefault appends the configured API key in API-key mode.
	APIKeyDefault APIKeyMode = iota
	// APIKeyDisabled never appends the API key.
	APIKeyDisabled
)

// BodyEncoding selects how Request.Body is serialized.
type BodyEncoding int

const (
	// EncodingJSON sends the body as application/json.
	EncodingJSON BodyEncoding = iota
	// EncodingForm sends url.Values or map[string]string as
	// application/x-www-form-urlencoded.
	EncodingForm
)

// RequestOptions override client defaults for one request.
type RequestOptions struct {
	ReadTimeout time.Duration
	OpenTimeout time.Duration
	BaseURL     string
	APIKey      APIKeyMode
	// NoParse skips body decoding; callers only care about success.
	NoParse  bool
	Encoding BodyEncoding
}

// RequestOption modifies RequestOptions.
type RequestOption func(*RequestOptions)

// NoParse returns the raw response without decoding the body.
func NoParse() RequestOption {
	return func(o *RequestOptions) {
		o.NoParse = true
	}
}

// WithReadTimeout overrides the read timeout.
func WithReadTimeout(d time.Duration) RequestOption {
	return func(o *RequestOptions) {
		o.ReadTimeout = d
	}
}

// WithOpenTimeout overrides the connection timeout.
func WithOpenTimeout(d time.Duration) RequestOption {
	return func(o *RequestOptions) {
		o.OpenTimeout = d
	}
}

// WithBaseURL sends the request to another host.
func WithBaseURL(baseURL string) RequestOption {
	return func(o *RequestOptions) {
		o.BaseURL = baseURL
	}
}

// WithoutAPIKey suppresses the hapikey parameter.
func WithoutAPIKey() RequestOption {
	return func(o *RequestOptions) {
		o.APIKey = APIKeyDisabled
	}
}

func buildOptions(opts []RequestOption) RequestOptions {
	var options RequestOptions
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

// Request represents an HTTP request. Path is a template whose :name
// placeholders are filled from Params.
type Request struct {
	Method  string
	Path    string
	Params  hubspot.Params
	Body    interface{}
	Headers map[string]string
	Options RequestOptions
}

// Response represents an HTTP response.
type Response struct {
	hubspot.Response

	// Decoded holds the JSON-decoded body, or the body text for non-JSON
	// responses. It is nil when the request used NoParse.
	Decoded interface{}
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v interface{}) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

func decodeBody(resp *Response) error {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	if !isJSON(resp.Headers.Get("Content-Type")) {
		resp.Decoded = string(resp.Body)

		return nil
	}

	var decoded interface{}

	err := json.Unmarshal(resp.Body, &decoded)
	if err != nil {
		return fmt.Errorf("parsing response body: %w", err)
	}

	resp.Decoded = decoded

	return nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
