package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/hubspot-client/internal/auth"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the hubspot.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	logger       hubspot.Logger

	// Resource clients
	deals             hubspot.DealsClient
	associations      hubspot.AssociationsClient
	engagements       hubspot.EngagementsClient
	contactLists      hubspot.ContactListsClient
	dealProperties    hubspot.PropertiesClient
	companyProperties hubspot.PropertiesClient
	blogs             hubspot.BlogsClient
	topics            hubspot.TopicsClient
	forms             hubspot.FormsClient
	events            hubspot.EventsClient
}

// createTokenManager picks a token manager for bearer mode. API-key
// configurations get none.
func createTokenManager(config *hubspot.Config) auth.TokenManager {
	if config.RefreshToken != "" {
		return auth.NewOAuth2TokenManager(oauth2Config(config))
	}

	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	return nil
}

func oauth2Config(config *hubspot.Config) *auth.OAuth2Config {
	return &auth.OAuth2Config{
		TokenURL:     config.TokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RefreshToken: config.RefreshToken,
		AccessToken:  config.AccessToken,
	}
}

// New creates a HubSpot client. The configuration must be valid.
func New(ctx context.Context, config *hubspot.Config, opts ...http.Option) (*Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	return NewWithTokenManager(config, createTokenManager(config), opts...)
}

// NewWithPersister creates a client whose refreshed OAuth2 tokens are
// written back through persister. Without a refresh token it behaves like
// New.
func NewWithPersister(config *hubspot.Config, persister auth.ConfigPersister, opts ...http.Option) (*Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	if config.RefreshToken == "" || persister == nil {
		return NewWithTokenManager(config, createTokenManager(config), opts...)
	}

	tokenManager := auth.NewConfigTokenManager(oauth2Config(config), persister, config.Logger)

	return NewWithTokenManager(config, tokenManager, opts...)
}

// NewWithTokenManager creates a client with a custom token manager. A nil
// tokenManager falls back to the one derived from config.
func NewWithTokenManager(config *hubspot.Config, tokenManager auth.TokenManager, opts ...http.Option) (*Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if tokenManager == nil {
		tokenManager = createTokenManager(config)
	}

	httpClient := http.NewClient(config, tokenManager, opts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// HTTPClient returns the connection shared by every resource client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// Deals implements hubspot.Client.Deals.
func (c *Client) Deals() hubspot.DealsClient {
	return c.deals
}

// Associations implements hubspot.Client.Associations.
func (c *Client) Associations() hubspot.AssociationsClient {
	return c.associations
}

// Engagements implements hubspot.Client.Engagements.
func (c *Client) Engagements() hubspot.EngagementsClient {
	return c.engagements
}

// ContactLists implements hubspot.Client.ContactLists.
func (c *Client) ContactLists() hubspot.ContactListsClient {
	return c.contactLists
}

// DealProperties implements hubspot.Client.DealProperties.
func (c *Client) DealProperties() hubspot.PropertiesClient {
	return c.dealProperties
}

// CompanyProperties implements hubspot.Client.CompanyProperties.
func (c *Client) CompanyProperties() hubspot.PropertiesClient {
	return c.companyProperties
}

// Blogs implements hubspot.Client.Blogs.
func (c *Client) Blogs() hubspot.BlogsClient {
	return c.blogs
}

// Topics implements hubspot.Client.Topics.
func (c *Client) Topics() hubspot.TopicsClient {
	return c.topics
}

// Forms implements hubspot.Client.Forms.
func (c *Client) Forms() hubspot.FormsClient {
	return c.forms
}

// Events implements hubspot.Client.Events.
func (c *Client) Events() hubspot.EventsClient {
	return c.events
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	associations := NewAssociationsClient(c.httpClient)

	c.associations = associations
	c.deals = NewDealsClient(c.httpClient, associations)
	c.engagements = NewEngagementsClient(c.httpClient)
	c.contactLists = NewContactListsClient(c.httpClient)
	c.dealProperties = NewPropertiesClient(c.httpClient, DealPropertiesPath)
	c.companyProperties = NewPropertiesClient(c.httpClient, CompanyPropertiesPath)
	c.topics = NewTopicsClient(c.httpClient)
	c.blogs = NewBlogsClient(c.httpClient, c.topics)
	c.forms = NewFormsClient(c.httpClient)
	c.events = NewEventsClient(c.httpClient)
}
