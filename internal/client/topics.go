package client

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const (
	topicsPath = "/blogs/v3/topics"
	topicPath  = "/blogs/v3/topics/:topic_id"
)

// TopicsClient implements hubspot.TopicsClient.
type TopicsClient struct {
	httpClient *http.Client
}

// NewTopicsClient creates a new topics client.
func NewTopicsClient(httpClient *http.Client) *TopicsClient {
	return &TopicsClient{
		httpClient: httpClient,
	}
}

// List implements hubspot.TopicsClient.List.
func (c *TopicsClient) List(ctx context.Context) ([]hubspot.Topic, error) {
	resp, err := c.httpClient.Get(ctx, topicsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}

	var list hubspot.ObjectList[hubspot.Topic]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing topics list: %w", err)
	}

	return list.Objects, nil
}

// FindByID implements hubspot.TopicsClient.FindByID.
func (c *TopicsClient) FindByID(ctx context.Context, topicID int64) (*hubspot.Topic, error) {
	resp, err := c.httpClient.Get(ctx, topicPath, hubspot.NewParams("topic_id", topicID))
	if err != nil {
		return nil, fmt.Errorf("getting topic: %w", err)
	}

	var topic hubspot.Topic

	err = json.Unmarshal(resp.Body, &topic)
	if err != nil {
		return nil, fmt.Errorf("parsing topic: %w", err)
	}

	return &topic, nil
}
