package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hshttp "github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json;charset=UTF-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

func apiKeyClient(serverURL string, opts ...hshttp.Option) *hshttp.Client {
	return hshttp.NewClient(&hubspot.Config{BaseURL: serverURL, APIKey: "demo", PortalID: "555"}, nil, opts...)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("resolves path and appends api key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/deal/42", request.URL.Path)
			assert.Equal(t, "hapikey=demo", request.URL.RawQuery)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Empty(t, request.Header.Get("Authorization"))

			writeJSON(writer, http.StatusOK, map[string]interface{}{"dealId": 42})
		}))
		defer server.Close()

		client := apiKeyClient(server.URL)

		resp, err := client.Get(context.Background(), "/deal/:deal_id", hubspot.NewParams("deal_id", 42))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		decoded, ok := resp.Decoded.(map[string]interface{})
		require.True(t, ok)
		assert.InDelta(t, 42, decoded["dealId"], 0)
	})

	t.Run("portal id from configuration", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/deal/555", request.URL.Path)
			assert.Equal(t, "property=firstname&hapikey=demo", request.URL.RawQuery)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := apiKeyClient(server.URL)

		resp, err := client.Get(context.Background(), "/deal/:portal_id", hubspot.NewParams("property", "firstname"))
		require.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)
		assert.Nil(t, resp.Decoded)
	})

	t.Run("bearer token replaces api key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Empty(t, request.URL.Query().Get("hapikey"))
			assert.Equal(t, "count=5", request.URL.RawQuery)
			writeJSON(writer, http.StatusOK, map[string]string{"result": "ok"})
		}))
		defer server.Close()

		client := hshttp.NewClient(&hubspot.Config{BaseURL: server.URL, AccessToken: "unused"}, &MockTokenManager{token: "test-token"})

		_, err := client.Get(context.Background(), "/contacts", hubspot.NewParams("hapikey", "ignored", "count", 5))
		require.NoError(t, err)
	})

	t.Run("static token from configuration", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "Bearer pat-na1-abc", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := hshttp.NewClient(&hubspot.Config{BaseURL: server.URL, AccessToken: "pat-na1-abc"}, nil)

		_, err := client.Get(context.Background(), "/contacts", nil)
		require.NoError(t, err)
	})

	t.Run("token failure aborts request", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			called.Store(true)
		}))
		defer server.Close()

		tokenErr := errors.New("token endpoint down")
		client := hshttp.NewClient(&hubspot.Config{BaseURL: server.URL, AccessToken: "x"}, &MockTokenManager{err: tokenErr})

		_, err := client.Get(context.Background(), "/contacts", nil)
		require.Error(t, err)
		require.ErrorIs(t, err, tokenErr)
		assert.False(t, called.Load())
	})

	t.Run("bearer mode without token source fails", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			called.Store(true)
		}))
		defer server.Close()

		client := hshttp.NewClient(&hubspot.Config{BaseURL: server.URL, RefreshToken: "refresh"}, nil)

		_, err := client.Get(context.Background(), "/contacts", nil)
		require.Error(t, err)
		require.ErrorIs(t, err, hubspot.ErrNoAuthMode)

		var configErr *hubspot.ConfigurationError
		require.ErrorAs(t, err, &configErr)
		assert.False(t, called.Load())
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Big deal", body["dealname"])

			writeJSON(writer, http.StatusOK, map[string]int{"dealId": 1})
		}))
		defer server.Close()

		client := apiKeyClient(server.URL)

		resp, err := client.Post(context.Background(), "/deals/v1/deal", nil, map[string]string{"dealname": "Big deal"})
		require.NoError(t, err)

		var result struct {
			DealID int `json:"dealId"`
		}

		require.NoError(t, resp.Decode(&result))
		assert.Equal(t, 1, result.DealID)
	})

	t.Run("non json response is kept as text", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(writer, "accepted")
		}))
		defer server.Close()

		resp, err := apiKeyClient(server.URL).Get(context.Background(), "/ping", nil)
		require.NoError(t, err)
		assert.Equal(t, "accepted", resp.Decoded)
	})

	t.Run("no parse returns raw response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, map[string]string{"status": "ok"})
		}))
		defer server.Close()

		resp, err := apiKeyClient(server.URL).Put(context.Background(), "/crm-associations/v1/associations/delete-batch", nil, []int{1}, hshttp.NoParse())
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Nil(t, resp.Decoded)
		assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body))
	})

	t.Run("not found carries response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusNotFound, hubspot.APIError{Status: "error", Message: "Deal does not exist"})
		}))
		defer server.Close()

		_, err := apiKeyClient(server.URL).Get(context.Background(), "/deal/:deal_id", hubspot.NewParams("deal_id", 9))
		require.Error(t, err)
		assert.True(t, hubspot.IsNotFound(err))

		var notFound *hubspot.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 404, notFound.Response.StatusCode)
		assert.Contains(t, string(notFound.Response.Body), "Deal does not exist")
		assert.NotContains(t, notFound.Response.URL, "demo")
	})

	t.Run("server error is request failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusInternalServerError, hubspot.APIError{Message: "internal", Category: "INTERNAL"})
		}))
		defer server.Close()

		_, err := apiKeyClient(server.URL).Get(context.Background(), "/deals", nil)
		require.Error(t, err)
		assert.True(t, hubspot.IsRequestError(err))

		var reqErr *hubspot.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, 500, reqErr.StatusCode())
		assert.Contains(t, err.Error(), "internal (category: INTERNAL)")
	})

	t.Run("unresolved placeholder fails before dispatch", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			called.Store(true)
		}))
		defer server.Close()

		_, err := apiKeyClient(server.URL).Get(context.Background(), "/deal/:deal_id", nil)
		require.ErrorIs(t, err, hubspot.ErrUnresolvedPlaceholder)
		assert.False(t, called.Load())
	})

	t.Run("missing api key fails before dispatch", func(t *testing.T) {
		t.Parallel()

		client := hshttp.NewClient(&hubspot.Config{BaseURL: "http://127.0.0.1:1"}, nil)

		_, err := client.Get(context.Background(), "/deals", nil)
		require.Error(t, err)
		assert.True(t, hubspot.IsConfigurationError(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		serverURL := server.URL
		server.Close()

		_, err := apiKeyClient(serverURL).Get(context.Background(), "/deals", nil)
		require.Error(t, err)
		assert.True(t, hubspot.IsRequestError(err))
		assert.Nil(t, hubspot.ResponseOf(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		_, err := apiKeyClient(server.URL).Do(context.Background(), &hshttp.Request{
			Method:  "GET",
			Path:    "/deals",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
	})

	t.Run("every call is logged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := apiKeyClient(server.URL, hshttp.WithLogger(logger))

		_, err := client.Post(context.Background(), "/deals", nil, map[string]string{"a": "b"})
		require.NoError(t, err)

		require.Len(t, logger.logs, 1)
		assert.Equal(t, "HubSpot request", logger.logs[0]["msg"])

		fields, ok := logger.logs[0]["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 200, fields["status"])
		assert.JSONEq(t, `{"a":"b"}`, fields["body"].(string))
		assert.Contains(t, fields["url"], "hapikey=REDACTED")
		assert.NotContains(t, fields["url"], "demo")
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := apiKeyClient(server.URL, hshttp.WithLogger(logger), hshttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/deals", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 3)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HubSpot request", logger.logs[1]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[2]["msg"])
	})

	t.Run("per call base url", func(t *testing.T) {
		t.Parallel()

		other := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/elsewhere", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer other.Close()

		client := apiKeyClient("http://127.0.0.1:1")

		_, err := client.Get(context.Background(), "/elsewhere", nil, hshttp.WithBaseURL(other.URL+"/"))
		require.NoError(t, err)
	})

	t.Run("read timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			select {
			case <-release:
			case <-request.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		_, err := apiKeyClient(server.URL).Get(context.Background(), "/slow", nil, hshttp.WithReadTimeout(50*time.Millisecond))
		require.Error(t, err)
		assert.True(t, hubspot.IsRequestError(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*hshttp.Client, context.Context) (*hshttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *hshttp.Client, ctx context.Context) (*hshttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *hshttp.Client, ctx context.Context) (*hshttp.Response, error) {
				return c.Post(ctx, "/test", nil, map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *hshttp.Client, ctx context.Context) (*hshttp.Response, error) {
				return c.Put(ctx, "/test", nil, map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *hshttp.Client, ctx context.Context) (*hshttp.Response, error) {
				return c.Delete(ctx, "/test", nil)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			resp, err := testCase.fn(apiKeyClient(server.URL), context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_NoRetry(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts.Add(1)
				writer.WriteHeader(status)
			}))
			defer server.Close()

			_, err := apiKeyClient(server.URL).Get(context.Background(), "/test", nil)
			require.Error(t, err)
			assert.Equal(t, status, hubspot.ResponseOf(err).StatusCode)
			assert.Equal(t, int32(1), attempts.Load())
		})
	}
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEmpty(t, request.Header.Get("X-Request-Id"))
		assert.Equal(t, "yes", request.Header.Get("X-Trace"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector := hubspot.NewMetricsCollector()
	chain := hubspot.NewInterceptorChain()
	chain.AddRequestInterceptor(hubspot.RequestIDInterceptor())
	chain.AddRequestInterceptor(hubspot.HeaderInterceptor(map[string]string{"X-Trace": "yes"}))
	chain.AddRequestInterceptor(hubspot.MetricsRequestInterceptor(collector))
	chain.AddResponseInterceptor(hubspot.MetricsResponseInterceptor(collector))

	client := apiKeyClient(server.URL, hshttp.WithInterceptors(chain))

	for _, id := range []int{1, 2} {
		_, err := client.Get(context.Background(), "/deals/v1/deal/:deal_id", hubspot.NewParams("deal_id", id))
		require.NoError(t, err)
	}

	metrics := collector.GetMetrics("GET /deals/v1/deal/:deal_id")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(0), metrics.TotalErrors)
}

func TestClient_BuildURL(t *testing.T) {
	t.Parallel()

	client := hshttp.NewClient(&hubspot.Config{BaseURL: "https://api.example.com/", APIKey: "demo"}, nil)

	built, err := client.BuildURL(&hshttp.Request{
		Path:   "/contacts/v1/lists/batch",
		Params: hubspot.NewParams("batch_list_id", hubspot.BatchOf([]int{3, 4}), "vids", []int{1, 2, 3}),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/contacts/v1/lists/batch?listId=3&listId=4&vids=1&vids=2&vids=3&hapikey=demo", built)
}

func TestClient_Concurrent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, map[string]string{"path": request.URL.Path})
	}))
	defer server.Close()

	client := apiKeyClient(server.URL)

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func(id int) {
			defer wg.Done()

			resp, err := client.Get(context.Background(), "/deal/:deal_id", hubspot.NewParams("deal_id", id))
			if assert.NoError(t, err) {
				assert.Equal(t, map[string]interface{}{"path": "/deal/" + strconv.Itoa(id)}, resp.Decoded)
			}
		}(i)
	}

	wg.Wait()
}
