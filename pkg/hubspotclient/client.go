// Package hubspotclient provides the main entry point for creating HubSpot API clients
package hubspotclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/auth"
	"github.com/fivetwenty-io/hubspot-client/internal/client"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// New creates a new HubSpot API client. config is not modified.
func New(ctx context.Context, config *hubspot.Config) (hubspot.Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithPersister creates a client that hands every refreshed OAuth2 token
// to persister.
func NewWithPersister(config *hubspot.Config, persister auth.ConfigPersister) (hubspot.Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.NewWithPersister(&normalized, persister)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// normalizeBaseURL trims trailing slashes and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithAPIKey creates a new client authenticated by a developer API key.
func NewWithAPIKey(ctx context.Context, apiKey, portalID string) (hubspot.Client, error) {
	return New(ctx, &hubspot.Config{
		APIKey:   apiKey,
		PortalID: portalID,
	})
}

// NewWithAccessToken creates a new client authenticated by a bearer token,
// e.g. a private app token.
func NewWithAccessToken(ctx context.Context, accessToken, portalID string) (hubspot.Client, error) {
	return New(ctx, &hubspot.Config{
		AccessToken: accessToken,
		PortalID:    portalID,
	})
}

// NewWithOAuth creates a new client that obtains access tokens through the
// OAuth2 refresh-token grant.
func NewWithOAuth(ctx context.Context, clientID, clientSecret, refreshToken string) (hubspot.Client, error) {
	return New(ctx, &hubspot.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
}
