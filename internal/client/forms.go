package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const formSubmissionPath = "/uploads/form/v2/:portal_id/:form_guid"

// FormsClient implements hubspot.FormsClient.
type FormsClient struct {
	httpClient *http.Client
}

// NewFormsClient creates a new forms client.
func NewFormsClient(httpClient *http.Client) *FormsClient {
	return &FormsClient{
		httpClient: httpClient,
	}
}

// Submit implements hubspot.FormsClient.Submit. A submission HubSpot
// answers with a non-success status reports false; transport and
// configuration failures are returned as errors.
func (c *FormsClient) Submit(ctx context.Context, formGUID string, fields map[string]string) (bool, error) {
	if formGUID == "" {
		return false, fmt.Errorf("%w: form guid is required", hubspot.ErrInvalidParams)
	}

	form := make(url.Values, len(fields))
	for key, value := range fields {
		form.Set(key, value)
	}

	resp, err := c.httpClient.SubmitForm(ctx, formSubmissionPath, hubspot.NewParams("form_guid", formGUID), form)
	if err != nil {
		if hubspot.ResponseOf(err) != nil {
			return false, nil
		}

		return false, fmt.Errorf("submitting form: %w", err)
	}

	return resp.Success(), nil
}
