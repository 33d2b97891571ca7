package client

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const (
	associationsBatchCreatePath = "/crm-associations/v1/associations/create-batch"
	associationsBatchDeletePath = "/crm-associations/v1/associations/delete-batch"
	associationsPath            = "/crm-associations/v1/associations/:resource_id/HUBSPOT_DEFINED/:definition_id"

	associationCategory = "HUBSPOT_DEFINED"
)

// AssociationsClient implements hubspot.AssociationsClient.
type AssociationsClient struct {
	httpClient *http.Client
}

// NewAssociationsClient creates a new associations client.
func NewAssociationsClient(httpClient *http.Client) *AssociationsClient {
	return &AssociationsClient{
		httpClient: httpClient,
	}
}

// DefinitionID returns the HUBSPOT_DEFINED association id linking from to to.
func DefinitionID(from, to hubspot.ObjectType) (int, error) {
	switch {
	case from == hubspot.ObjectContact && to == hubspot.ObjectCompany:
		return constants.ContactToCompanyDefinition, nil
	case from == hubspot.ObjectCompany && to == hubspot.ObjectContact:
		return constants.CompanyToContactDefinition, nil
	case from == hubspot.ObjectDeal && to == hubspot.ObjectContact:
		return constants.DealToContactDefinition, nil
	case from == hubspot.ObjectContact && to == hubspot.ObjectDeal:
		return constants.ContactToDealDefinition, nil
	case from == hubspot.ObjectDeal && to == hubspot.ObjectCompany:
		return constants.DealToCompanyDefinition, nil
	case from == hubspot.ObjectCompany && to == hubspot.ObjectDeal:
		return constants.CompanyToDealDefinition, nil
	default:
		return 0, fmt.Errorf("%w: %s to %s", hubspot.ErrUnsupportedObjectType, from, to)
	}
}

func associationBody(from, to hubspot.ObjectType, pairs []hubspot.AssociationPair) ([]hubspot.Association, error) {
	definitionID, err := DefinitionID(from, to)
	if err != nil {
		return nil, err
	}

	body := make([]hubspot.Association, 0, len(pairs))
	for _, pair := range pairs {
		body = append(body, hubspot.Association{
			FromObjectID: pair.FromID,
			ToObjectID:   pair.ToID,
			Category:     associationCategory,
			DefinitionID: definitionID,
		})
	}

	return body, nil
}

// BatchCreate implements hubspot.AssociationsClient.BatchCreate.
func (c *AssociationsClient) BatchCreate(ctx context.Context, from, to hubspot.ObjectType, pairs []hubspot.AssociationPair) (bool, error) {
	body, err := associationBody(from, to, pairs)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Put(ctx, associationsBatchCreatePath, nil, body, http.NoParse())
	if err != nil {
		return false, fmt.Errorf("creating associations: %w", err)
	}

	return resp.Success(), nil
}

// BatchDelete implements hubspot.AssociationsClient.BatchDelete.
func (c *AssociationsClient) BatchDelete(ctx context.Context, from, to hubspot.ObjectType, pairs []hubspot.AssociationPair) (bool, error) {
	body, err := associationBody(from, to, pairs)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Put(ctx, associationsBatchDeletePath, nil, body, http.NoParse())
	if err != nil {
		return false, fmt.Errorf("deleting associations: %w", err)
	}

	return resp.Success(), nil
}

// All implements hubspot.AssociationsClient.All. Every page is fetched.
func (c *AssociationsClient) All(ctx context.Context, from hubspot.ObjectType, fromID int64, to hubspot.ObjectType) ([]int64, error) {
	definitionID, err := DefinitionID(from, to)
	if err != nil {
		return nil, err
	}

	params := hubspot.NewParams("resource_id", fromID, "definition_id", definitionID)

	var ids []int64

	for {
		resp, err := c.httpClient.Get(ctx, associationsPath, params)
		if err != nil {
			return nil, fmt.Errorf("listing associations: %w", err)
		}

		var page hubspot.AssociationPage

		err = json.Unmarshal(resp.Body, &page)
		if err != nil {
			return nil, fmt.Errorf("parsing associations list: %w", err)
		}

		ids = append(ids, page.Results...)

		if !page.HasMore || len(page.Results) == 0 {
			return ids, nil
		}

		params = params.With("offset", page.Offset)
	}
}
