package client

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const (
	dealsPath       = "/deals/v1/deal"
	dealPath        = "/deals/v1/deal/:deal_id"
	dealsPagedPath  = "/deals/v1/deal/paged"
	dealsRecentPath = "/deals/v1/deal/recent/modified"

	dealPropertyKey = "name"
)

// DealsClient implements hubspot.DealsClient.
type DealsClient struct {
	httpClient   *http.Client
	associations hubspot.AssociationsClient
}

// NewDealsClient creates a new deals client.
func NewDealsClient(httpClient *http.Client, associations hubspot.AssociationsClient) *DealsClient {
	return &DealsClient{
		httpClient:   httpClient,
		associations: associations,
	}
}

// Create implements hubspot.DealsClient.Create.
func (c *DealsClient) Create(ctx context.Context, portalID int64, companyIDs, vids []int64, properties hubspot.PropertyValues) (*hubspot.Deal, error) {
	request := hubspot.DealCreateRequest{
		PortalID: portalID,
		Associations: hubspot.DealAssociated{
			AssociatedCompanyIDs: nonNil(companyIDs),
			AssociatedVids:       nonNil(vids),
		},
		Properties: properties.PropertyList(dealPropertyKey),
	}

	resp, err := c.httpClient.Post(ctx, dealsPath, nil, request)
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}

	var deal hubspot.Deal

	err = json.Unmarshal(resp.Body, &deal)
	if err != nil {
		return nil, fmt.Errorf("parsing deal response: %w", err)
	}

	return &deal, nil
}

// Find implements hubspot.DealsClient.Find.
func (c *DealsClient) Find(ctx context.Context, dealID int64) (*hubspot.Deal, error) {
	resp, err := c.httpClient.Get(ctx, dealPath, hubspot.NewParams("deal_id", dealID))
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}

	var deal hubspot.Deal

	err = json.Unmarshal(resp.Body, &deal)
	if err != nil {
		return nil, fmt.Errorf("parsing deal: %w", err)
	}

	return &deal, nil
}

// All implements hubspot.DealsClient.All. Associations are always included.
func (c *DealsClient) All(ctx context.Context, opts *hubspot.DealListOptions) (*hubspot.DealPage, error) {
	params := dealListParams(opts, "limit").With("includeAssociations", "true")

	resp, err := c.httpClient.Get(ctx, dealsPagedPath, params)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}

	var page hubspot.DealPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing deals list: %w", err)
	}

	return &page, nil
}

// Recent implements hubspot.DealsClient.Recent.
func (c *DealsClient) Recent(ctx context.Context, opts *hubspot.DealListOptions) ([]hubspot.Deal, error) {
	resp, err := c.httpClient.Get(ctx, dealsRecentPath, dealListParams(opts, "count"))
	if err != nil {
		return nil, fmt.Errorf("listing recent deals: %w", err)
	}

	var recent struct {
		Results []hubspot.Deal `json:"results"`
	}

	err = json.Unmarshal(resp.Body, &recent)
	if err != nil {
		return nil, fmt.Errorf("parsing recent deals: %w", err)
	}

	return recent.Results, nil
}

func dealListParams(opts *hubspot.DealListOptions, limitName string) hubspot.Params {
	params := hubspot.Params{}
	if opts == nil {
		return params
	}

	if opts.Limit > 0 {
		params = params.With(limitName, opts.Limit)
	}

	if opts.Offset > 0 {
		params = params.With("offset", opts.Offset)
	}

	if len(opts.Properties) > 0 {
		params = params.With("properties", opts.Properties)
	}

	if !opts.Since.IsZero() {
		params = params.With("since", opts.Since)
	}

	return params
}

// Update implements hubspot.DealsClient.Update.
func (c *DealsClient) Update(ctx context.Context, dealID int64, properties hubspot.PropertyValues) (bool, error) {
	err := c.UpdateStrict(ctx, dealID, properties)
	if err != nil {
		if hubspot.IsRequestError(err) || hubspot.IsNotFound(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// UpdateStrict implements hubspot.DealsClient.UpdateStrict.
func (c *DealsClient) UpdateStrict(ctx context.Context, dealID int64, properties hubspot.PropertyValues) error {
	body := map[string]interface{}{"properties": properties.PropertyList(dealPropertyKey)}

	_, err := c.httpClient.Put(ctx, dealPath, hubspot.NewParams("deal_id", dealID), body, http.NoParse())
	if err != nil {
		return fmt.Errorf("updating deal: %w", err)
	}

	return nil
}

// Delete implements hubspot.DealsClient.Delete.
func (c *DealsClient) Delete(ctx context.Context, dealID int64) error {
	_, err := c.httpClient.Delete(ctx, dealPath, hubspot.NewParams("deal_id", dealID), http.NoParse())
	if err != nil {
		return fmt.Errorf("deleting deal: %w", err)
	}

	return nil
}

// Associate implements hubspot.DealsClient.Associate.
func (c *DealsClient) Associate(ctx context.Context, dealID int64, companyIDs, vids []int64) (bool, error) {
	return c.changeAssociations(ctx, c.associations.BatchCreate, dealID, companyIDs, vids)
}

// Dissociate implements hubspot.DealsClient.Dissociate.
func (c *DealsClient) Dissociate(ctx context.Context, dealID int64, companyIDs, vids []int64) (bool, error) {
	return c.changeAssociations(ctx, c.associations.BatchDelete, dealID, companyIDs, vids)
}

type batchAssociationFunc func(ctx context.Context, from, to hubspot.ObjectType, pairs []hubspot.AssociationPair) (bool, error)

func (c *DealsClient) changeAssociations(ctx context.Context, apply batchAssociationFunc, dealID int64, companyIDs, vids []int64) (bool, error) {
	groups := []struct {
		to  hubspot.ObjectType
		ids []int64
	}{
		{hubspot.ObjectCompany, companyIDs},
		{hubspot.ObjectContact, vids},
	}

	ok := true

	for _, group := range groups {
		if len(group.ids) == 0 {
			continue
		}

		pairs := make([]hubspot.AssociationPair, 0, len(group.ids))
		for _, id := range group.ids {
			pairs = append(pairs, hubspot.AssociationPair{FromID: dealID, ToID: id})
		}

		success, err := apply(ctx, hubspot.ObjectDeal, group.to, pairs)
		if err != nil {
			return false, err
		}

		ok = ok && success
	}

	return ok, nil
}

// FindByAssociation implements hubspot.DealsClient.FindByAssociation.
// objectType must be a contact or a company.
func (c *DealsClient) FindByAssociation(ctx context.Context, objectType hubspot.ObjectType, objectID int64) ([]hubspot.Deal, error) {
	if objectType != hubspot.ObjectContact && objectType != hubspot.ObjectCompany {
		return nil, fmt.Errorf("%w: %s", hubspot.ErrUnsupportedObjectType, objectType)
	}

	dealIDs, err := c.associations.All(ctx, objectType, objectID, hubspot.ObjectDeal)
	if err != nil {
		return nil, err
	}

	deals := make([]hubspot.Deal, 0, len(dealIDs))

	for _, dealID := range dealIDs {
		deal, err := c.Find(ctx, dealID)
		if err != nil {
			return nil, err
		}

		deals = append(deals, *deal)
	}

	return deals, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}

	return ids
}
