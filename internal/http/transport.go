package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const dialKeepAlive = 30 * time.Second

type openTimeoutKey struct{}

// withOpenTimeout stores the dial timeout for one request in ctx.
func withOpenTimeout(ctx context.Context, d time.Duration) context.Context {
	if d <= 0 {
		return ctx
	}

	return context.WithValue(ctx, openTimeoutKey{}, d)
}

// newTransport returns a transport whose dials honor the per-request open
// timeout carried by the request context.
func newTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	dialer := &net.Dialer{KeepAlive: dialKeepAlive}

	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		if d, ok := ctx.Value(openTimeoutKey{}).(time.Duration); ok {
			var cancel context.CancelFunc

			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		return dialer.DialContext(ctx, network, addr)
	}

	return transport
}

// newRetryableClient builds the dispatch client. Retries are disabled and
// errors pass through untouched, so every failure reaches the caller as is.
func newRetryableClient(transport http.RoundTripper) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: transport}
	client.RetryMax = 0
	client.Logger = nil
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, nil
	}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return client
}
