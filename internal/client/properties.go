package client

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Property API roots per object type.
const (
	DealPropertiesPath    = "/properties/v1/deals"
	CompanyPropertiesPath = "/properties/v1/companies"
)

// PropertiesClient implements hubspot.PropertiesClient for one object type.
type PropertiesClient struct {
	httpClient *http.Client
	basePath   string
}

// NewPropertiesClient creates a properties client rooted at basePath,
// e.g. DealPropertiesPath.
func NewPropertiesClient(httpClient *http.Client, basePath string) *PropertiesClient {
	return &PropertiesClient{
		httpClient: httpClient,
		basePath:   basePath,
	}
}

func (c *PropertiesClient) propertiesPath() string {
	return c.basePath + "/properties"
}

func (c *PropertiesClient) propertyPath() string {
	return c.basePath + "/properties/named/:property_name"
}

func (c *PropertiesClient) groupsPath() string {
	return c.basePath + "/groups"
}

func (c *PropertiesClient) groupPath() string {
	return c.basePath + "/groups/named/:group_name"
}

// All implements hubspot.PropertiesClient.All.
func (c *PropertiesClient) All(ctx context.Context, filter hubspot.GroupFilter) ([]hubspot.Property, error) {
	resp, err := c.httpClient.Get(ctx, c.propertiesPath(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}

	var properties []hubspot.Property

	err = json.Unmarshal(resp.Body, &properties)
	if err != nil {
		return nil, fmt.Errorf("parsing properties: %w", err)
	}

	kept := make([]hubspot.Property, 0, len(properties))

	for _, property := range properties {
		if filter.Keep(property.GroupName) {
			kept = append(kept, property)
		}
	}

	return kept, nil
}

// Find implements hubspot.PropertiesClient.Find.
func (c *PropertiesClient) Find(ctx context.Context, name string) (*hubspot.Property, error) {
	resp, err := c.httpClient.Get(ctx, c.propertyPath(), hubspot.NewParams("property_name", name))
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}

	return parseProperty(resp)
}

// Create implements hubspot.PropertiesClient.Create.
func (c *PropertiesClient) Create(ctx context.Context, fields map[string]any) (*hubspot.Property, error) {
	body := propertyBody(fields)
	if body == nil {
		return nil, nil
	}

	resp, err := c.httpClient.Post(ctx, c.propertiesPath(), nil, body)
	if err != nil {
		return nil, fmt.Errorf("creating property: %w", err)
	}

	return parseProperty(resp)
}

// Update implements hubspot.PropertiesClient.Update. It returns nil
// without a request when fields holds no writable attribute.
func (c *PropertiesClient) Update(ctx context.Context, name string, fields map[string]any) (*hubspot.Property, error) {
	body := propertyBody(fields)
	if body == nil {
		return nil, nil
	}

	resp, err := c.httpClient.Put(ctx, c.propertyPath(), hubspot.NewParams("property_name", name), body)
	if err != nil {
		return nil, fmt.Errorf("updating property: %w", err)
	}

	return parseProperty(resp)
}

// Delete implements hubspot.PropertiesClient.Delete.
func (c *PropertiesClient) Delete(ctx context.Context, name string) error {
	_, err := c.httpClient.Delete(ctx, c.propertyPath(), hubspot.NewParams("property_name", name), http.NoParse())
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	return nil
}

// Groups implements hubspot.PropertiesClient.Groups.
func (c *PropertiesClient) Groups(ctx context.Context, filter hubspot.GroupFilter) ([]hubspot.PropertyGroup, error) {
	resp, err := c.httpClient.Get(ctx, c.groupsPath(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing property groups: %w", err)
	}

	var groups []hubspot.PropertyGroup

	err = json.Unmarshal(resp.Body, &groups)
	if err != nil {
		return nil, fmt.Errorf("parsing property groups: %w", err)
	}

	kept := make([]hubspot.PropertyGroup, 0, len(groups))

	for _, group := range groups {
		if filter.Keep(group.Name) {
			kept = append(kept, group)
		}
	}

	return kept, nil
}

// FindGroup implements hubspot.PropertiesClient.FindGroup.
func (c *PropertiesClient) FindGroup(ctx context.Context, name string) (*hubspot.PropertyGroup, error) {
	resp, err := c.httpClient.Get(ctx, c.groupPath(), hubspot.NewParams("group_name", name))
	if err != nil {
		return nil, fmt.Errorf("getting property group: %w", err)
	}

	return parseGroup(resp)
}

// CreateGroup implements hubspot.PropertiesClient.CreateGroup. It returns
// nil without a request when fields holds no writable attribute.
func (c *PropertiesClient) CreateGroup(ctx context.Context, fields map[string]any) (*hubspot.PropertyGroup, error) {
	body := filterFields(fields, hubspot.PropertyGroupFields)
	if body == nil {
		return nil, nil
	}

	resp, err := c.httpClient.Post(ctx, c.groupsPath(), nil, body)
	if err != nil {
		return nil, fmt.Errorf("creating property group: %w", err)
	}

	return parseGroup(resp)
}

// UpdateGroup implements hubspot.PropertiesClient.UpdateGroup.
func (c *PropertiesClient) UpdateGroup(ctx context.Context, name string, fields map[string]any) (*hubspot.PropertyGroup, error) {
	body := filterFields(fields, hubspot.PropertyGroupFields)
	if body == nil {
		return nil, nil
	}

	resp, err := c.httpClient.Put(ctx, c.groupPath(), hubspot.NewParams("group_name", name), body)
	if err != nil {
		return nil, fmt.Errorf("updating property group: %w", err)
	}

	return parseGroup(resp)
}

// DeleteGroup implements hubspot.PropertiesClient.DeleteGroup.
func (c *PropertiesClient) DeleteGroup(ctx context.Context, name string) error {
	_, err := c.httpClient.Delete(ctx, c.groupPath(), hubspot.NewParams("group_name", name), http.NoParse())
	if err != nil {
		return fmt.Errorf("deleting property group: %w", err)
	}

	return nil
}

// propertyBody keeps writable property attributes. options defaults to an
// empty list as HubSpot requires it on every write.
func propertyBody(fields map[string]any) map[string]any {
	body := filterFields(fields, hubspot.PropertyFields)
	if body == nil {
		return nil
	}

	if _, ok := body["options"]; !ok {
		body["options"] = []hubspot.PropertyOption{}
	}

	return body
}

func filterFields(fields map[string]any, allowed []string) map[string]any {
	body := make(map[string]any)

	for _, name := range allowed {
		if value, ok := fields[name]; ok {
			body[name] = value
		}
	}

	if len(body) == 0 {
		return nil
	}

	return body
}

func parseProperty(resp *http.Response) (*hubspot.Property, error) {
	var property hubspot.Property

	err := json.Unmarshal(resp.Body, &property)
	if err != nil {
		return nil, fmt.Errorf("parsing property: %w", err)
	}

	return &property, nil
}

func parseGroup(resp *http.Response) (*hubspot.PropertyGroup, error) {
	var group hubspot.PropertyGroup

	err := json.Unmarshal(resp.Body, &group)
	if err != nil {
		return nil, fmt.Errorf("parsing property group: %w", err)
	}

	return &group, nil
}
