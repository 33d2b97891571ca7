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
	engagementsPath           = "/engagements/v1/engagements"
	engagementPath            = "/engagements/v1/engagements/:engagement_id"
	engagementsPagedPath      = "/engagements/v1/engagements/paged"
	engagementAssociatePath   = "/engagements/v1/engagements/:engagement_id/associations/:object_type/:object_vid"
	engagementsAssociatedPath = "/engagements/v1/engagements/associated/:objectType/:objectId/paged"
)

// EngagementsClient implements hubspot.EngagementsClient.
type EngagementsClient struct {
	httpClient *http.Client
}

// NewEngagementsClient creates a new engagements client.
func NewEngagementsClient(httpClient *http.Client) *EngagementsClient {
	return &EngagementsClient{
		httpClient: httpClient,
	}
}

// Create implements hubspot.EngagementsClient.Create.
func (c *EngagementsClient) Create(ctx context.Context, engagement *hubspot.Engagement) (*hubspot.Engagement, error) {
	resp, err := c.httpClient.Post(ctx, engagementsPath, nil, engagement)
	if err != nil {
		return nil, fmt.Errorf("creating engagement: %w", err)
	}

	return parseEngagement(resp)
}

// CreateNote implements hubspot.EngagementsClient.CreateNote.
func (c *EngagementsClient) CreateNote(ctx context.Context, note *hubspot.NoteRequest) (*hubspot.Engagement, error) {
	engagement := &hubspot.Engagement{
		Engagement: hubspot.EngagementInfo{
			Type:    constants.EngagementTypeNote,
			OwnerID: note.OwnerID,
		},
		Associations: hubspot.EngagementAssociations{
			ContactIDs: []int64{note.ContactID},
			DealIDs:    optionalID(note.DealID),
		},
		Metadata: map[string]any{"body": note.Body},
	}

	return c.Create(ctx, engagement)
}

// CreateCall implements hubspot.EngagementsClient.CreateCall.
func (c *EngagementsClient) CreateCall(ctx context.Context, call *hubspot.CallRequest) (*hubspot.Engagement, error) {
	status := call.Status
	if status == "" {
		status = constants.DefaultCallStatus
	}

	engagement := &hubspot.Engagement{
		Engagement: hubspot.EngagementInfo{
			Type:    constants.EngagementTypeCall,
			OwnerID: call.OwnerID,
		},
		Associations: hubspot.EngagementAssociations{
			ContactIDs: []int64{call.ContactID},
			DealIDs:    optionalID(call.DealID),
			OwnerIDs:   optionalID(call.OwnerID),
		},
		Metadata: map[string]any{
			"body":                 call.Body,
			"status":               status,
			"durationMilliseconds": call.Duration.Milliseconds(),
		},
	}

	if !call.Time.IsZero() {
		engagement.Engagement.Timestamp = call.Time.Unix() * 1000
	}

	return c.Create(ctx, engagement)
}

func optionalID(id int64) []int64 {
	if id == 0 {
		return nil
	}

	return []int64{id}
}

// Find implements hubspot.EngagementsClient.Find.
func (c *EngagementsClient) Find(ctx context.Context, engagementID int64) (*hubspot.Engagement, error) {
	resp, err := c.httpClient.Get(ctx, engagementPath, hubspot.NewParams("engagement_id", engagementID))
	if err != nil {
		if hubspot.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting engagement: %w", err)
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}

	return parseEngagement(resp)
}

// FindByAssociation implements hubspot.EngagementsClient.FindByAssociation.
// An unknown object yields no engagements.
func (c *EngagementsClient) FindByAssociation(ctx context.Context, objectID int64, objectType string) ([]hubspot.Engagement, error) {
	if objectType == "" {
		return nil, fmt.Errorf("%w: object type is required", hubspot.ErrInvalidParams)
	}

	params := hubspot.NewParams("objectType", objectType, "objectId", objectID)

	resp, err := c.httpClient.Get(ctx, engagementsAssociatedPath, params)
	if err != nil {
		if hubspot.IsNotFound(err) {
			return []hubspot.Engagement{}, nil
		}

		return nil, fmt.Errorf("listing associated engagements: %w", err)
	}

	var page hubspot.EngagementPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing associated engagements: %w", err)
	}

	if page.Results == nil {
		return []hubspot.Engagement{}, nil
	}

	return page.Results, nil
}

// All implements hubspot.EngagementsClient.All.
func (c *EngagementsClient) All(ctx context.Context, limit int, offset int64) (*hubspot.EngagementPage, error) {
	params := hubspot.Params{}

	if limit > 0 {
		params = params.With("limit", limit)
	}

	if offset > 0 {
		params = params.With("offset", offset)
	}

	resp, err := c.httpClient.Get(ctx, engagementsPagedPath, params)
	if err != nil {
		return nil, fmt.Errorf("listing engagements: %w", err)
	}

	var page hubspot.EngagementPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing engagements list: %w", err)
	}

	return &page, nil
}

// Associate implements hubspot.EngagementsClient.Associate.
func (c *EngagementsClient) Associate(ctx context.Context, engagementID int64, objectType string, objectID int64) error {
	params := hubspot.NewParams(
		"engagement_id", engagementID,
		"object_type", objectType,
		"object_vid", objectID,
	)

	_, err := c.httpClient.Put(ctx, engagementAssociatePath, params, nil, http.NoParse())
	if err != nil {
		return fmt.Errorf("associating engagement: %w", err)
	}

	return nil
}

// Update implements hubspot.EngagementsClient.Update. When HubSpot answers
// without a body the submitted engagement is returned.
func (c *EngagementsClient) Update(ctx context.Context, engagementID int64, engagement *hubspot.Engagement) (*hubspot.Engagement, error) {
	if engagement == nil {
		return nil, fmt.Errorf("%w: engagement is required", hubspot.ErrInvalidParams)
	}

	resp, err := c.httpClient.Put(ctx, engagementPath, hubspot.NewParams("engagement_id", engagementID), engagement)
	if err != nil {
		return nil, fmt.Errorf("updating engagement: %w", err)
	}

	if len(resp.Body) == 0 {
		updated := *engagement
		updated.Engagement.ID = engagementID

		return &updated, nil
	}

	return parseEngagement(resp)
}

// Delete implements hubspot.EngagementsClient.Delete.
func (c *EngagementsClient) Delete(ctx context.Context, engagementID int64) error {
	_, err := c.httpClient.Delete(ctx, engagementPath, hubspot.NewParams("engagement_id", engagementID), http.NoParse())
	if err != nil {
		return fmt.Errorf("deleting engagement: %w", err)
	}

	return nil
}

func parseEngagement(resp *http.Response) (*hubspot.Engagement, error) {
	var engagement hubspot.Engagement

	err := json.Unmarshal(resp.Body, &engagement)
	if err != nil {
		return nil, fmt.Errorf("parsing engagement: %w", err)
	}

	return &engagement, nil
}
