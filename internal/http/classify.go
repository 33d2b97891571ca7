package http

import (
	"net/http"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Classify maps a response to nil for 2xx, *hubspot.NotFoundError for 404
// and *hubspot.RequestError for anything else.
func Classify(resp *Response) error {
	switch {
	case resp.Success():
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &hubspot.NotFoundError{Response: &resp.Response}
	default:
		return &hubspot.RequestError{Response: &resp.Response}
	}
}
