package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/hubspot-client/internal/auth"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Client is the HubSpot connection. It is safe for concurrent use and keeps
// no per-request state.
type Client struct {
	config          *hubspot.Config
	baseURL         string
	formsBaseURL    string
	trackingBaseURL string
	tokenManager    auth.TokenManager
	httpClient      *retryablehttp.Client
	logger          hubspot.Logger
	debug           bool
	userAgent       string
	interceptors    *hubspot.InterceptorChain
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger hubspot.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response header logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *hubspot.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithPolicyBaseURLs overrides the hosts used for form submissions and
// event tracking.
func WithPolicyBaseURLs(formsBaseURL, trackingBaseURL string) Option {
	return func(c *Client) {
		if formsBaseURL != "" {
			c.formsBaseURL = strings.TrimRight(formsBaseURL, "/")
		}

		if trackingBaseURL != "" {
			c.trackingBaseURL = strings.TrimRight(trackingBaseURL, "/")
		}
	}
}

// WithTransport replaces the HTTP transport. The per-request open timeout
// only applies to the default transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Transport = transport
	}
}

// NewClient creates a connection for config. config is copied with defaults
// applied. When tokenManager is nil and config carries an access token, a
// static token manager is used.
func NewClient(config *hubspot.Config, tokenManager auth.TokenManager, opts ...Option) *Client {
	cfg := config.WithDefaults()

	if tokenManager == nil && cfg.AccessToken != "" {
		tokenManager = auth.NewStaticTokenManager(cfg.AccessToken)
	}

	client := &Client{
		config:          cfg,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		formsBaseURL:    constants.FormsBaseURL,
		trackingBaseURL: constants.TrackingBaseURL,
		tokenManager:    tokenManager,
		httpClient:      newRetryableClient(newTransport()),
		logger:          cfg.Logger,
		debug:           cfg.Debug,
		userAgent:       cfg.UserAgent,
		interceptors:    cfg.Interceptors,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Config returns a copy of the client configuration.
func (c *Client) Config() hubspot.Config {
	return *c.config
}

// BuildURL returns the absolute URL of req: authentication parameters are
// injected, placeholders resolved and the remaining parameters serialized.
func (c *Client) BuildURL(req *Request) (string, error) {
	params, err := InjectAuth(req.Path, req.Params, c.config, req.Options.APIKey)
	if err != nil {
		return "", err
	}

	path, remaining, err := ResolvePath(req.Path, params)
	if err != nil {
		return "", err
	}

	baseURL := c.baseURL
	if req.Options.BaseURL != "" {
		baseURL = strings.TrimRight(req.Options.BaseURL, "/")
	}

	return baseURL + AppendQuery(path, EncodeQuery(remaining)), nil
}

// Do executes a request. Non-success statuses are returned as
// *hubspot.NotFoundError or *hubspot.RequestError carrying the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.BuildURL(req)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeRequestBody(req.Body, req.Options.Encoding)
	if err != nil {
		return nil, err
	}

	readTimeout := c.config.ReadTimeout
	if req.Options.ReadTimeout > 0 {
		readTimeout = req.Options.ReadTimeout
	}

	openTimeout := c.config.OpenTimeout
	if req.Options.OpenTimeout > 0 {
		openTimeout = req.Options.OpenTimeout
	}

	if readTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, readTimeout)
		defer cancel()
	}

	ctx = withOpenTimeout(ctx, openTimeout)

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	err = c.setHeaders(ctx, httpReq, req, contentType)
	if err != nil {
		return nil, err
	}

	intercepted := &hubspot.Request{
		Method:  req.Method,
		URL:     fullURL,
		Path:    req.Path,
		Headers: httpReq.Header,
		Body:    body,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}

		httpReq.Header = intercepted.Headers
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     redactURL(fullURL),
			"headers": redactHeaders(httpReq.Header),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, intercepted, body, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.transportFailure(ctx, intercepted, body, fmt.Errorf("reading response body: %w", err))
	}

	resp := &Response{Response: hubspot.Response{
		Method:     req.Method,
		URL:        redactURL(fullURL),
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}}

	c.logExchange(req.Method, fullURL, body, resp)

	if c.interceptors != nil {
		err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &resp.Response)
		if err != nil {
			return nil, err
		}
	}

	err = Classify(resp)
	if err != nil {
		return nil, err
	}

	if req.Options.NoParse {
		return resp, nil
	}

	err = decodeBody(resp)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params hubspot.Params, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Params: params, Options: buildOptions(opts)})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, params hubspot.Params, body interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Params: params, Body: body, Options: buildOptions(opts)})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, params hubspot.Params, body interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Params: params, Body: body, Options: buildOptions(opts)})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params hubspot.Params, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Params: params, Options: buildOptions(opts)})
}

func (c *Client) setHeaders(ctx context.Context, httpReq *retryablehttp.Request, req *Request, contentType string) error {
	httpReq.Header.Set("Accept", constants.ContentTypeJSON)

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.config.AuthMode() == hubspot.AuthModeBearer {
		if c.tokenManager == nil {
			return &hubspot.ConfigurationError{
				Reason: "bearer authentication without a token source",
				Fields: []hubspot.ConfigField{hubspot.FieldAccessToken},
				Err:    hubspot.ErrNoAuthMode,
			}
		}

		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting access token: %w", err)
		}

		httpReq.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	return nil
}

func (c *Client) transportFailure(ctx context.Context, req *hubspot.Request, body []byte, cause error) error {
	if c.logger != nil {
		c.logger.Error("HubSpot request failed", map[string]interface{}{
			"method": req.Method,
			"url":    redactURL(req.URL),
			"body":   truncate(body),
			"error":  cause.Error(),
		})
	}

	if c.interceptors != nil {
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, req, &hubspot.Response{
			Method: req.Method,
			URL:    redactURL(req.URL),
			Error:  cause,
		})
	}

	return &hubspot.RequestError{Err: cause}
}

func (c *Client) logExchange(method, fullURL string, body []byte, resp *Response) {
	if c.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"method":   method,
		"url":      redactURL(fullURL),
		"status":   resp.StatusCode,
		"response": truncate(resp.Body),
	}

	if len(body) > 0 {
		fields["body"] = truncate(body)
	}

	c.logger.Info("HubSpot request", fields)

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"headers":     resp.Headers,
		})
	}
}

func encodeRequestBody(body interface{}, encoding BodyEncoding) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	if encoding == EncodingForm {
		switch form := body.(type) {
		case url.Values:
			return []byte(form.Encode()), constants.ContentTypeForm, nil
		case map[string]string:
			values := make(url.Values, len(form))
			for key, value := range form {
				values.Set(key, value)
			}

			return []byte(values.Encode()), constants.ContentTypeForm, nil
		default:
			return nil, "", fmt.Errorf("%w: form body must be url.Values or map[string]string, got %T", hubspot.ErrInvalidParams, body)
		}
	}

	switch raw := body.(type) {
	case []byte:
		return raw, constants.ContentTypeJSON, nil
	case json.RawMessage:
		return raw, constants.ContentTypeJSON, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return data, constants.ContentTypeJSON, nil
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := u.Query()
	if query.Get(constants.APIKeyParam) == "" {
		return raw
	}

	query.Set(constants.APIKeyParam, "REDACTED")
	u.RawQuery = query.Encode()

	return u.String()
}

func redactHeaders(headers http.Header) http.Header {
	out := headers.Clone()
	if out.Get(constants.HeaderAuthorization) != "" {
		out.Set(constants.HeaderAuthorization, "Bearer REDACTED")
	}

	return out
}

func truncate(body []byte) string {
	if len(body) > constants.MaxLogBodySize {
		return string(body[:constants.MaxLogBodySize]) + "..."
	}

	return string(body)
}
