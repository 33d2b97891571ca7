package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

func engagementPayload(id int64, engagementType, body string) map[string]interface{} {
	return map[string]interface{}{
		"engagement": map[string]interface{}{
			"id":       id,
			"portalId": 62515,
			"type":     engagementType,
		},
		"associations": map[string]interface{}{
			"contactIds": []int64{1},
		},
		"metadata": map[string]interface{}{"body": body},
	}
}

func TestEngagementsClient_CreateNote(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/engagements/v1/engagements", request.URL.Path)

		body, ok := DecodeBody(t, request).(map[string]interface{})
		if assert.True(t, ok) {
			assert.Equal(t, map[string]interface{}{"type": "NOTE", "ownerId": float64(7)}, body["engagement"])
			assert.Equal(t, map[string]interface{}{"contactIds": []interface{}{float64(1)}}, body["associations"])
			assert.Equal(t, map[string]interface{}{"body": "Hello"}, body["metadata"])
		}

		WriteJSON(writer, http.StatusOK, engagementPayload(51, "NOTE", "Hello"))
	})

	client := NewTestClient(t, server.URL)

	engagement, err := client.Engagements().CreateNote(context.Background(), &hubspot.NoteRequest{
		ContactID: 1,
		Body:      "Hello",
		OwnerID:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(51), engagement.ID())
	assert.Equal(t, "Hello", engagement.Body())
}

func TestEngagementsClient_CreateCall(t *testing.T) {
	t.Parallel()

	callTime := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		body, ok := DecodeBody(t, request).(map[string]interface{})
		if assert.True(t, ok) {
			assert.Equal(t, map[string]interface{}{
				"type":      "CALL",
				"ownerId":   float64(7),
				"timestamp": float64(callTime.Unix() * 1000),
			}, body["engagement"])
			assert.Equal(t, map[string]interface{}{
				"contactIds": []interface{}{float64(1)},
				"dealIds":    []interface{}{float64(3)},
				"ownerIds":   []interface{}{float64(7)},
			}, body["associations"])
			assert.Equal(t, map[string]interface{}{
				"body":                 "Call notes",
				"status":               "COMPLETED",
				"durationMilliseconds": float64(90000),
			}, body["metadata"])
		}

		WriteJSON(writer, http.StatusOK, engagementPayload(52, "CALL", "Call notes"))
	})

	client := NewTestClient(t, server.URL)

	engagement, err := client.Engagements().CreateCall(context.Background(), &hubspot.CallRequest{
		ContactID: 1,
		Body:      "Call notes",
		Duration:  90 * time.Second,
		OwnerID:   7,
		DealID:    3,
		Time:      callTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "CALL", engagement.Engagement.Type)
}

func TestEngagementsClient_Find(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/engagements/v1/engagements/51", request.URL.Path)
			WriteJSON(writer, http.StatusOK, engagementPayload(51, "NOTE", "Hello"))
		})

		client := NewTestClient(t, server.URL)

		engagement, err := client.Engagements().Find(context.Background(), 51)
		require.NoError(t, err)
		require.NotNil(t, engagement)
		assert.Equal(t, int64(51), engagement.ID())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			WriteJSON(writer, http.StatusNotFound, map[string]string{"message": "not found"})
		})

		client := NewTestClient(t, server.URL)

		engagement, err := client.Engagements().Find(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, engagement)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		})

		client := NewTestClient(t, server.URL)

		_, err := client.Engagements().Find(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, hubspot.IsRequestError(err))
	})
}

func TestEngagementsClient_FindByAssociation(t *testing.T) {
	t.Parallel()

	t.Run("lists engagements", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/engagements/v1/engagements/associated/CONTACT/1/paged", request.URL.Path)
			WriteJSON(writer, http.StatusOK, map[string]interface{}{
				"results": []interface{}{engagementPayload(1, "NOTE", "a"), engagementPayload(2, "CALL", "b")},
				"hasMore": false,
			})
		})

		client := NewTestClient(t, server.URL)

		engagements, err := client.Engagements().FindByAssociation(context.Background(), 1, "CONTACT")
		require.NoError(t, err)
		require.Len(t, engagements, 2)
		assert.Equal(t, "b", engagements[1].Body())
	})

	t.Run("unknown object", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		})

		client := NewTestClient(t, server.URL)

		engagements, err := client.Engagements().FindByAssociation(context.Background(), 1, "CONTACT")
		require.NoError(t, err)
		assert.Empty(t, engagements)
	})

	t.Run("object type required", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "http://127.0.0.1:1")

		_, err := client.Engagements().FindByAssociation(context.Background(), 1, "")
		require.ErrorIs(t, err, hubspot.ErrInvalidParams)
	})
}

func TestEngagementsClient_All(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/engagements/v1/engagements/paged", request.URL.Path)
		assert.Equal(t, "limit=10&offset=20&hapikey=demo", request.URL.RawQuery)
		WriteJSON(writer, http.StatusOK, map[string]interface{}{
			"results": []interface{}{engagementPayload(1, "NOTE", "a")},
			"hasMore": true,
			"offset":  21,
		})
	})

	client := NewTestClient(t, server.URL)

	page, err := client.Engagements().All(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Len(t, page.Results, 1)
	assert.True(t, page.HasMore)
	assert.Equal(t, int64(21), page.Offset)
}

func TestEngagementsClient_Associate(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "/engagements/v1/engagements/51/associations/CONTACT/9", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	})

	client := NewTestClient(t, server.URL)

	require.NoError(t, client.Engagements().Associate(context.Background(), 51, "CONTACT", 9))
}

func TestEngagementsClient_Update(t *testing.T) {
	t.Parallel()

	t.Run("empty response returns submitted engagement", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			assert.Equal(t, "/engagements/v1/engagements/51", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		})

		client := NewTestClient(t, server.URL)

		updated, err := client.Engagements().Update(context.Background(), 51, &hubspot.Engagement{
			Metadata: map[string]any{"body": "Edited"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(51), updated.ID())
		assert.Equal(t, "Edited", updated.Body())
	})

	t.Run("decodes response", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			WriteJSON(writer, http.StatusOK, engagementPayload(51, "NOTE", "From server"))
		})

		client := NewTestClient(t, server.URL)

		updated, err := client.Engagements().Update(context.Background(), 51, &hubspot.Engagement{})
		require.NoError(t, err)
		assert.Equal(t, "From server", updated.Body())
	})

	t.Run("nil engagement", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "http://127.0.0.1:1")

		_, err := client.Engagements().Update(context.Background(), 51, nil)
		require.ErrorIs(t, err, hubspot.ErrInvalidParams)
	})
}

func TestEngagementsClient_Delete(t *testing.T) {
	t.Parallel()

	RunDeleteTests(t, []TestDeleteOperation{
		{Name: "deleted", ExpectedPath: "/engagements/v1/engagements/51", StatusCode: http.StatusNoContent},
		{Name: "server error", ExpectedPath: "/engagements/v1/engagements/51", StatusCode: http.StatusBadGateway, WantErr: true},
	}, int64(51), func(c *Client) func(context.Context, int64) error {
		return c.Engagements().Delete
	})
}
