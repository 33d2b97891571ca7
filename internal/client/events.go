package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const (
	eventTriggerPath = "/v1/event"
	customEventPath  = "/events/v3/send"
)

// EventsClient implements hubspot.EventsClient.
type EventsClient struct {
	httpClient *http.Client
}

// NewEventsClient creates a new events client.
func NewEventsClient(httpClient *http.Client) *EventsClient {
	return &EventsClient{
		httpClient: httpClient,
	}
}

// Track implements hubspot.EventsClient.Track. The hit is attributed to the
// configured portal; properties are sent in key order after the event id,
// portal and email.
func (c *EventsClient) Track(ctx context.Context, eventID, email string, properties map[string]string) (bool, error) {
	if eventID == "" {
		return false, fmt.Errorf("%w: event id is required", hubspot.ErrInvalidParams)
	}

	config := c.httpClient.Config()

	err := config.Ensure(hubspot.FieldPortalID)
	if err != nil {
		return false, err
	}

	params := hubspot.NewParams(
		"_n", eventID,
		"_a", config.PortalID,
		"email", email,
	)

	extra := make(map[string]any, len(properties))
	for key, value := range properties {
		extra[key] = value
	}

	params = params.Merge(hubspot.ParamsFromMap(extra))

	resp, err := c.httpClient.TriggerEvent(ctx, eventTriggerPath, params, nil)
	if err != nil {
		if hubspot.ResponseOf(err) != nil {
			return false, nil
		}

		return false, fmt.Errorf("tracking event: %w", err)
	}

	return resp.Success(), nil
}

// TrackCustom implements hubspot.EventsClient.TrackCustom.
func (c *EventsClient) TrackCustom(ctx context.Context, event *hubspot.CustomEvent) error {
	if event == nil || event.EventName == "" {
		return fmt.Errorf("%w: event name is required", hubspot.ErrInvalidParams)
	}

	_, err := c.httpClient.TriggerCustomEvent(ctx, customEventPath, nil, event, nil)
	if err != nil {
		return fmt.Errorf("sending custom event: %w", err)
	}

	return nil
}
