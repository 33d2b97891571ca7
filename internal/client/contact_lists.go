package client

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const (
	contactListsPath        = "/contacts/v1/lists"
	contactListPath         = "/contacts/v1/lists/:list_id"
	contactListsBatchPath   = "/contacts/v1/lists/batch"
	contactListAllPath      = "/contacts/v1/lists/:list_id/contacts/all"
	contactListRecentPath   = "/contacts/v1/lists/:list_id/contacts/recent"
	contactListAddPath      = "/contacts/v1/lists/:list_id/add"
	contactListRemovePath   = "/contacts/v1/lists/:list_id/remove"
	contactListRefreshPath  = "/contacts/v1/lists/:list_id/refresh"
	contactListsByKindPath  = "/contacts/v1/lists/:kind"
	contactListBatchIDParam = "batch_list_id"
)

// ContactListsClient implements hubspot.ContactListsClient.
type ContactListsClient struct {
	httpClient *http.Client
}

// NewContactListsClient creates a new contact lists client.
func NewContactListsClient(httpClient *http.Client) *ContactListsClient {
	return &ContactListsClient{
		httpClient: httpClient,
	}
}

// Create implements hubspot.ContactListsClient.Create.
func (c *ContactListsClient) Create(ctx context.Context, request *hubspot.ContactListRequest) (*hubspot.ContactList, error) {
	resp, err := c.httpClient.Post(ctx, contactListsPath, nil, request)
	if err != nil {
		return nil, fmt.Errorf("creating contact list: %w", err)
	}

	return parseContactList(resp)
}

// All implements hubspot.ContactListsClient.All.
func (c *ContactListsClient) All(ctx context.Context, opts *hubspot.ContactListOptions) (*hubspot.ContactListPage, error) {
	path := contactListsPath
	params := hubspot.Params{}

	if opts != nil {
		if opts.Kind != hubspot.ListsAll {
			path = contactListsByKindPath
			params = params.With("kind", string(opts.Kind))
		}

		if opts.Count > 0 {
			params = params.With("count", opts.Count)
		}

		if opts.Offset > 0 {
			params = params.With("offset", opts.Offset)
		}
	}

	resp, err := c.httpClient.Get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing contact lists: %w", err)
	}

	var page hubspot.ContactListPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing contact lists: %w", err)
	}

	return &page, nil
}

// Find implements hubspot.ContactListsClient.Find.
func (c *ContactListsClient) Find(ctx context.Context, listID int64) (*hubspot.ContactList, error) {
	resp, err := c.httpClient.Get(ctx, contactListPath, hubspot.NewParams("list_id", listID))
	if err != nil {
		return nil, fmt.Errorf("getting contact list: %w", err)
	}

	return parseContactList(resp)
}

// FindBatch implements hubspot.ContactListsClient.FindBatch. Lists are
// returned in the order HubSpot sends them.
func (c *ContactListsClient) FindBatch(ctx context.Context, listIDs []int64) ([]hubspot.ContactList, error) {
	if len(listIDs) == 0 {
		return []hubspot.ContactList{}, nil
	}

	params := hubspot.NewParams(contactListBatchIDParam, hubspot.BatchOf(listIDs))

	resp, err := c.httpClient.Get(ctx, contactListsBatchPath, params)
	if err != nil {
		return nil, fmt.Errorf("getting contact lists: %w", err)
	}

	var batch struct {
		Lists []hubspot.ContactList `json:"lists"`
	}

	err = json.Unmarshal(resp.Body, &batch)
	if err != nil {
		return nil, fmt.Errorf("parsing contact lists: %w", err)
	}

	return batch.Lists, nil
}

// Contacts implements hubspot.ContactListsClient.Contacts.
func (c *ContactListsClient) Contacts(ctx context.Context, listID int64, opts *hubspot.ContactPageOptions) (*hubspot.ContactPage, error) {
	path := contactListAllPath
	params := hubspot.NewParams("list_id", listID)

	if opts != nil {
		if opts.Recent {
			path = contactListRecentPath
		}

		if opts.Count > 0 {
			params = params.With("count", opts.Count)
		}

		if opts.VidOffset > 0 {
			params = params.With("vidOffset", opts.VidOffset)
		}

		if len(opts.Properties) > 0 {
			params = params.With("property", opts.Properties)
		}
	}

	resp, err := c.httpClient.Get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing list contacts: %w", err)
	}

	var page hubspot.ContactPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing list contacts: %w", err)
	}

	return &page, nil
}

// Add implements hubspot.ContactListsClient.Add. It reports true when every
// contact is in the list afterwards, including contacts that already were.
func (c *ContactListsClient) Add(ctx context.Context, listID int64, vids []int64) (bool, error) {
	result, err := c.changeMembers(ctx, contactListAddPath, listID, vids)
	if err != nil {
		return false, fmt.Errorf("adding contacts to list: %w", err)
	}

	return containsAll(append(result.Updated, result.Discarded...), vids), nil
}

// Remove implements hubspot.ContactListsClient.Remove. It reports true
// when every contact was removed.
func (c *ContactListsClient) Remove(ctx context.Context, listID int64, vids []int64) (bool, error) {
	result, err := c.changeMembers(ctx, contactListRemovePath, listID, vids)
	if err != nil {
		return false, fmt.Errorf("removing contacts from list: %w", err)
	}

	return containsAll(result.Updated, vids), nil
}

func (c *ContactListsClient) changeMembers(ctx context.Context, path string, listID int64, vids []int64) (*hubspot.ListMembershipResult, error) {
	body := map[string][]int64{"vids": nonNil(vids)}

	resp, err := c.httpClient.Post(ctx, path, hubspot.NewParams("list_id", listID), body)
	if err != nil {
		return nil, err
	}

	var result hubspot.ListMembershipResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing membership result: %w", err)
	}

	return &result, nil
}

func containsAll(have, want []int64) bool {
	set := make(map[int64]bool, len(have))
	for _, id := range have {
		set[id] = true
	}

	for _, id := range want {
		if !set[id] {
			return false
		}
	}

	return len(want) > 0
}

// Update implements hubspot.ContactListsClient.Update.
func (c *ContactListsClient) Update(ctx context.Context, listID int64, request *hubspot.ContactListRequest) (*hubspot.ContactList, error) {
	resp, err := c.httpClient.Post(ctx, contactListPath, hubspot.NewParams("list_id", listID), request)
	if err != nil {
		return nil, fmt.Errorf("updating contact list: %w", err)
	}

	return parseContactList(resp)
}

// Delete implements hubspot.ContactListsClient.Delete.
func (c *ContactListsClient) Delete(ctx context.Context, listID int64) error {
	_, err := c.httpClient.Delete(ctx, contactListPath, hubspot.NewParams("list_id", listID), http.NoParse())
	if err != nil {
		return fmt.Errorf("deleting contact list: %w", err)
	}

	return nil
}

// Refresh implements hubspot.ContactListsClient.Refresh.
func (c *ContactListsClient) Refresh(ctx context.Context, listID int64) (bool, error) {
	resp, err := c.httpClient.Post(ctx, contactListRefreshPath, hubspot.NewParams("list_id", listID), nil, http.NoParse())
	if err != nil {
		return false, fmt.Errorf("refreshing contact list: %w", err)
	}

	return resp.Success(), nil
}

func parseContactList(resp *http.Response) (*hubspot.ContactList, error) {
	var list hubspot.ContactList

	err := json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing contact list: %w", err)
	}

	return &list, nil
}
