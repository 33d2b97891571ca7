package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// OAuth2Config configures the refresh-token grant against the HubSpot
// token endpoint.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
	// HTTPClient is used for token requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// OAuth2TokenManager keeps an access token fresh using a refresh token.
type OAuth2TokenManager struct {
	config *OAuth2Config
	oauth  *oauth2.Config
	store  *TokenStore
	mu     sync.Mutex
}

// NewOAuth2TokenManager creates a token manager. An AccessToken in config
// is used until it is refreshed.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = constants.DefaultTokenURL
	}

	manager := &OAuth2TokenManager{
		config: config,
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		store: NewTokenStore(),
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			TokenType:    "bearer",
			RefreshToken: config.RefreshToken,
		})
	}

	return manager
}

// GetToken returns a valid access token, refreshing it when needed.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.refresh(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a token refresh.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.refresh(ctx)
}

// SetToken manually sets the access token, keeping the refresh token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Set(&Token{
		AccessToken:  token,
		TokenType:    "bearer",
		RefreshToken: m.currentRefreshToken(),
		ExpiresAt:    expiresAt,
	})
}

func (m *OAuth2TokenManager) currentRefreshToken() string {
	if token := m.store.Get(); token != nil && token.RefreshToken != "" {
		return token.RefreshToken
	}

	return m.config.RefreshToken
}

func (m *OAuth2TokenManager) refresh(ctx context.Context) error {
	refreshToken := m.currentRefreshToken()
	if refreshToken == "" {
		return hubspot.ErrNoRefreshToken
	}

	if m.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.config.HTTPClient)
	}

	source := m.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	fresh, err := source.Token()
	if err != nil {
		return fmt.Errorf("refreshing access token: %w", err)
	}

	m.store.Set(&Token{
		AccessToken:  fresh.AccessToken,
		TokenType:    fresh.TokenType,
		RefreshToken: fresh.RefreshToken,
		ExpiresAt:    fresh.Expiry,
	})

	return nil
}
