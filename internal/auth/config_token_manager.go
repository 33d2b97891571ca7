package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister defines the interface for persisting config changes.
type ConfigPersister interface {
	UpdateTokens(accessToken string, expiresAt time.Time, refreshToken string) error
}

// ConfigTokenManager wraps OAuth2TokenManager and persists every refreshed
// token, so the next process starts from the newest refresh token.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	logger          hubspot.Logger
	mutex           sync.Mutex
	lastToken       string
	lastExpiry      time.Time
}

// NewConfigTokenManager creates a new config-persisting token manager.
func NewConfigTokenManager(config *OAuth2Config, configPersister ConfigPersister, logger hubspot.Logger) *ConfigTokenManager {
	return &ConfigTokenManager{
		oauth2Manager:   NewOAuth2TokenManager(config),
		configPersister: configPersister,
		logger:          logger,
		lastToken:       config.AccessToken,
	}
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a token refresh.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
	m.lastExpiry = expiresAt
}

// GetTokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) GetTokenExpiry() time.Time {
	token := m.oauth2Manager.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *ConfigTokenManager) persistIfChanged() {
	current := m.oauth2Manager.store.Get()
	if current == nil || (current.AccessToken == m.lastToken && current.ExpiresAt.Equal(m.lastExpiry)) {
		return
	}

	err := m.persistToken(current)
	if err != nil && m.logger != nil {
		m.logger.Warn("failed to persist refreshed token", map[string]interface{}{"error": err.Error()})
	}

	m.lastToken = current.AccessToken
	m.lastExpiry = current.ExpiresAt
}

// persistToken saves the token to config.
func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateTokens(token.AccessToken, token.ExpiresAt, token.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to update tokens: %w", err)
	}

	return nil
}
