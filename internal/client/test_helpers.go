package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Credentials used by every test client.
const (
	testAPIKey   = "demo"
	testPortalID = "62515"
)

// NewTestClient creates an API-key client whose API, forms and tracking
// hosts all point at baseURL.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	config := &hubspot.Config{
		BaseURL:  baseURL,
		APIKey:   testAPIKey,
		PortalID: testPortalID,
	}

	client, err := New(context.Background(), config, internalhttp.WithPolicyBaseURLs(baseURL, baseURL))
	require.NoError(t, err)

	return client
}

// NewTestServer starts a server running handler and closes it with the test.
func NewTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// WriteJSON writes v as a JSON response with status.
func WriteJSON(writer http.ResponseWriter, status int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if v != nil {
		_ = json.NewEncoder(writer).Encode(v)
	}
}

// DecodeBody decodes a JSON request body into a generic value.
func DecodeBody(t *testing.T, request *http.Request) interface{} {
	t.Helper()

	data, err := io.ReadAll(request.Body)
	if !assert.NoError(t, err) {
		return nil
	}

	var body interface{}

	assert.NoError(t, json.Unmarshal(data, &body))

	return body
}

// TestGetOperation is a get-by-id test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           int64
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantNotFound bool
	Check        func(*testing.T, *TResponse)
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, int64) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				assert.Equal(t, testAPIKey, request.URL.Query().Get("hapikey"))
				WriteJSON(writer, testCase.StatusCode, testCase.Response)
			})

			client := NewTestClient(t, server.URL)

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, testCase.WantNotFound, hubspot.IsNotFound(err))

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// TestDeleteOperation is a delete-by-id test case.
type TestDeleteOperation struct {
	Name         string
	ExpectedPath string
	StatusCode   int
	WantErr      bool
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests[TKey any](
	t *testing.T,
	tests []TestDeleteOperation,
	key TKey,
	deleteFunc func(*Client) func(context.Context, TKey) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodDelete, request.Method)
				writer.WriteHeader(testCase.StatusCode)
			})

			client := NewTestClient(t, server.URL)

			err := deleteFunc(client)(context.Background(), key)

			if testCase.WantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
