package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// SubmitForm posts form fields to the forms host. The API key is never
// sent; the raw response is returned after classification.
func (c *Client) SubmitForm(ctx context.Context, path string, params hubspot.Params, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Params: params,
		Body:   form,
		Options: RequestOptions{
			BaseURL:  c.formsBaseURL,
			APIKey:   APIKeyDisabled,
			NoParse:  true,
			Encoding: EncodingForm,
		},
	})
}

// TriggerEvent issues a tracking GET against the tracking host without the
// API key.
func (c *Client) TriggerEvent(ctx context.Context, path string, params hubspot.Params, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    path,
		Params:  params,
		Headers: headers,
		Options: RequestOptions{
			BaseURL: c.trackingBaseURL,
			APIKey:  APIKeyDisabled,
			NoParse: true,
		},
	})
}

// TriggerCustomEvent posts a JSON event to the API host with the normal
// authentication applied.
func (c *Client) TriggerCustomEvent(ctx context.Context, path string, params hubspot.Params, body interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    path,
		Params:  params,
		Body:    body,
		Headers: headers,
		Options: RequestOptions{NoParse: true},
	})
}
