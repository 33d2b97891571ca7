package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

func listPayload(id int64, name string) map[string]interface{} {
	return map[string]interface{}{
		"listId":   id,
		"portalId": 62515,
		"name":     name,
		"dynamic":  false,
	}
}

func TestContactListsClient_Create(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/contacts/v1/lists", request.URL.Path)
		assert.Equal(t, map[string]interface{}{"name": "Leads", "dynamic": false}, DecodeBody(t, request))
		WriteJSON(writer, http.StatusOK, listPayload(3, "Leads"))
	})

	client := NewTestClient(t, server.URL)

	list, err := client.ContactLists().Create(context.Background(), &hubspot.ContactListRequest{Name: "Leads"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.ListID)
	assert.Equal(t, "Leads", list.Name)
}

func TestContactListsClient_All(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      *hubspot.ContactListOptions
		wantPath  string
		wantQuery string
	}{
		{
			name:      "all lists",
			opts:      nil,
			wantPath:  "/contacts/v1/lists",
			wantQuery: "hapikey=demo",
		},
		{
			name:      "static lists page",
			opts:      &hubspot.ContactListOptions{Kind: hubspot.ListsStatic, Count: 2, Offset: 4},
			wantPath:  "/contacts/v1/lists/static",
			wantQuery: "count=2&offset=4&hapikey=demo",
		},
		{
			name:      "dynamic lists",
			opts:      &hubspot.ContactListOptions{Kind: hubspot.ListsDynamic},
			wantPath:  "/contacts/v1/lists/dynamic",
			wantQuery: "hapikey=demo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, tt.wantPath, request.URL.Path)
				assert.Equal(t, tt.wantQuery, request.URL.RawQuery)
				WriteJSON(writer, http.StatusOK, map[string]interface{}{
					"lists":    []interface{}{listPayload(1, "a"), listPayload(2, "b")},
					"offset":   2,
					"has-more": true,
				})
			})

			client := NewTestClient(t, server.URL)

			page, err := client.ContactLists().All(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Len(t, page.Lists, 2)
			assert.True(t, page.HasMore)
		})
	}
}

func TestContactListsClient_Find(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[hubspot.ContactList]{
		{
			Name:         "found",
			ID:           8,
			ExpectedPath: "/contacts/v1/lists/8",
			StatusCode:   http.StatusOK,
			Response:     listPayload(8, "Customers"),
			Check: func(t *testing.T, list *hubspot.ContactList) {
				t.Helper()
				assert.Equal(t, "Customers", list.Name)
			},
		},
		{
			Name:         "not found",
			ID:           9,
			ExpectedPath: "/contacts/v1/lists/9",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			WantNotFound: true,
		},
	}, func(c *Client) func(context.Context, int64) (*hubspot.ContactList, error) {
		return c.ContactLists().Find
	})
}

func TestContactListsClient_FindBatch(t *testing.T) {
	t.Parallel()

	t.Run("expands list ids", func(t *testing.T) {
		t.Parallel()

		server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/contacts/v1/lists/batch", request.URL.Path)
			assert.Equal(t, "listId=1&listId=2&hapikey=demo", request.URL.RawQuery)
			WriteJSON(writer, http.StatusOK, map[string]interface{}{
				"lists": []interface{}{listPayload(1, "a"), listPayload(2, "b")},
			})
		})

		client := NewTestClient(t, server.URL)

		lists, err := client.ContactLists().FindBatch(context.Background(), []int64{1, 2})
		require.NoError(t, err)
		require.Len(t, lists, 2)
		assert.Equal(t, "b", lists[1].Name)
	})

	t.Run("no ids sends nothing", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "http://127.0.0.1:1")

		lists, err := client.ContactLists().FindBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, lists)
	})
}

func TestContactListsClient_Contacts(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/contacts/v1/lists/8/contacts/recent", request.URL.Path)
		assert.Equal(t, "count=2&vidOffset=100&property=email&property=firstname&hapikey=demo", request.URL.RawQuery)
		WriteJSON(writer, http.StatusOK, map[string]interface{}{
			"contacts": []interface{}{
				map[string]interface{}{
					"vid": 101,
					"properties": map[string]interface{}{
						"email": map[string]interface{}{"value": "a@example.com"},
					},
				},
			},
			"has-more":   false,
			"vid-offset": 101,
		})
	})

	client := NewTestClient(t, server.URL)

	page, err := client.ContactLists().Contacts(context.Background(), 8, &hubspot.ContactPageOptions{
		Count:      2,
		VidOffset:  100,
		Recent:     true,
		Properties: []string{"email", "firstname"},
	})
	require.NoError(t, err)
	require.Len(t, page.Contacts, 1)
	assert.Equal(t, "a@example.com", page.Contacts[0].Email())
	assert.Equal(t, int64(101), page.VidOffset)
}

func TestContactListsClient_Membership(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		remove   bool
		result   map[string][]int64
		wantPath string
		want     bool
	}{
		{
			name:     "add all updated",
			result:   map[string][]int64{"updated": {1, 2}},
			wantPath: "/contacts/v1/lists/8/add",
			want:     true,
		},
		{
			name:     "add counts existing members",
			result:   map[string][]int64{"updated": {1}, "discarded": {2}},
			wantPath: "/contacts/v1/lists/8/add",
			want:     true,
		},
		{
			name:     "add with invalid vid",
			result:   map[string][]int64{"updated": {1}, "invalidVids": {2}},
			wantPath: "/contacts/v1/lists/8/add",
			want:     false,
		},
		{
			name:     "remove all",
			remove:   true,
			result:   map[string][]int64{"updated": {1, 2}},
			wantPath: "/contacts/v1/lists/8/remove",
			want:     true,
		},
		{
			name:     "remove ignores discarded",
			remove:   true,
			result:   map[string][]int64{"updated": {1}, "discarded": {2}},
			wantPath: "/contacts/v1/lists/8/remove",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, http.MethodPost, request.Method)
				assert.Equal(t, tt.wantPath, request.URL.Path)
				assert.Equal(t, map[string]interface{}{"vids": []interface{}{float64(1), float64(2)}}, DecodeBody(t, request))
				WriteJSON(writer, http.StatusOK, tt.result)
			})

			client := NewTestClient(t, server.URL)
			lists := client.ContactLists()

			var (
				ok  bool
				err error
			)

			if tt.remove {
				ok, err = lists.Remove(context.Background(), 8, []int64{1, 2})
			} else {
				ok, err = lists.Add(context.Background(), 8, []int64{1, 2})
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestContactListsClient_Update(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/contacts/v1/lists/8", request.URL.Path)
		WriteJSON(writer, http.StatusOK, listPayload(8, "Renamed"))
	})

	client := NewTestClient(t, server.URL)

	list, err := client.ContactLists().Update(context.Background(), 8, &hubspot.ContactListRequest{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", list.Name)
}

func TestContactListsClient_Refresh(t *testing.T) {
	t.Parallel()

	server := NewTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/contacts/v1/lists/8/refresh", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	})

	client := NewTestClient(t, server.URL)

	ok, err := client.ContactLists().Refresh(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContactListsClient_Delete(t *testing.T) {
	t.Parallel()

	RunDeleteTests(t, []TestDeleteOperation{
		{Name: "deleted", ExpectedPath: "/contacts/v1/lists/8", StatusCode: http.StatusNoContent},
		{Name: "missing", ExpectedPath: "/contacts/v1/lists/8", StatusCode: http.StatusNotFound, WantErr: true},
	}, int64(8), func(c *Client) func(context.Context, int64) error {
		return c.ContactLists().Delete
	})
}
