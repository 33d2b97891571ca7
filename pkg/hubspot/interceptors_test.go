package hubspot_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func TestInterceptorChain_LoggingInterceptors(t *testing.T) {
	logger := &recordingLogger{}
	chain := hubspot.NewInterceptorChain()
	chain.AddRequestInterceptor(hubspot.LoggingInterceptor(logger))
	chain.AddResponseInterceptor(hubspot.LoggingResponseInterceptor(logger))

	ctx := context.Background()
	req := &hubspot.Request{Method: http.MethodGet, Path: "/deals/v1/deal/:deal_id"}

	require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
	require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, &hubspot.Response{StatusCode: http.StatusNotFound}))

	require.Len(t, logger.entries, 2)

	assert.Equal(t, "debug", logger.entries[0].level)
	assert.Equal(t, "API Request", logger.entries[0].msg)
	assert.Equal(t, map[string]interface{}{"method": "GET", "path": "/deals/v1/deal/:deal_id"}, logger.entries[0].fields)

	assert.Equal(t, "error", logger.entries[1].level)
	assert.Equal(t, http.StatusNotFound, logger.entries[1].fields["status_code"])
}

func TestRequestIDInterceptor_KeepsExisting(t *testing.T) {
	interceptor := hubspot.RequestIDInterceptor()

	req := &hubspot.Request{Headers: http.Header{"X-Request-Id": []string{"fixed"}}}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "fixed", req.Headers.Get("X-Request-Id"))

	fresh := &hubspot.Request{}
	require.NoError(t, interceptor(context.Background(), fresh))
	assert.Len(t, fresh.Headers.Get("X-Request-Id"), 36)
}
