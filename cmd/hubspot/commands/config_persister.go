package commands

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// ConfigPersister implements the auth.ConfigPersister interface by writing
// refreshed OAuth2 tokens to the CLI config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateTokens stores the access token, its expiry and the rotated refresh
// token.
func (p *ConfigPersister) UpdateTokens(accessToken string, expiresAt time.Time, refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	config.AccessToken = accessToken
	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	if refreshToken != "" {
		config.RefreshToken = refreshToken
	}

	now := time.Now()
	config.LastRefreshed = &now

	err := saveConfigStruct(config)
	if err != nil {
		return err
	}

	viper.Set("access_token", config.AccessToken)
	viper.Set("refresh_token", config.RefreshToken)

	return nil
}
