package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

func TestFormsClient_Submit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"accepted", http.StatusNoContent, true},
		{"redirected to thank-you page", http.StatusOK, true},
		{"rejected", http.StatusBadRequest, false},
		{"unknown form", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, http.MethodPost, request.Method)
				assert.Equal(t, "/uploads/form/v2/62515/561d9ce9-bb4c-45b4-8e32-21cdeaa3a7f0", request.URL.Path)
				assert.Empty(t, request.URL.RawQuery)
				assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
				assert.NoError(t, request.ParseForm())
				assert.Equal(t, "jane@example.com", request.PostForm.Get("email"))
				assert.Equal(t, "Jane", request.PostForm.Get("firstname"))
				writer.WriteHeader(tt.status)
			})

			client := NewTestClient(t, server.URL)

			ok, err := client.Forms().Submit(context.Background(), "561d9ce9-bb4c-45b4-8e32-21cdeaa3a7f0", map[string]string{
				"email":     "jane@example.com",
				"firstname": "Jane",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestFormsClient_SubmitErrors(t *testing.T) {
	t.Parallel()

	t.Run("guid required", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "http://127.0.0.1:1")

		_, err := client.Forms().Submit(context.Background(), "", nil)
		require.ErrorIs(t, err, hubspot.ErrInvalidParams)
	})

	t.Run("portal id required", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &hubspot.Config{BaseURL: "http://127.0.0.1:1", APIKey: "demo"})
		require.NoError(t, err)

		_, err = client.Forms().Submit(context.Background(), "guid", nil)
		require.Error(t, err)
		assert.True(t, hubspot.IsConfigurationError(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(http.ResponseWriter, *http.Request) {})
		server.Close()

		client := NewTestClient(t, server.URL)

		ok, err := client.Forms().Submit(context.Background(), "guid", map[string]string{"email": "a@b.c"})
		require.Error(t, err)
		assert.False(t, ok)

		var reqErr *hubspot.RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Nil(t, reqErr.Response)
	})
}
