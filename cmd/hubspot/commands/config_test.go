package commands_test

import (
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/fivetwenty-io/hubspot-client/cmd/hubspot/commands"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
)

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.Len(t, cmd.Commands(), 2)
	assert.NotNil(t, findSubcommand(cmd, "show"))
	assert.NotNil(t, findSubcommand(cmd, "set"))
}

func TestConfigSet(t *testing.T) {
	configFile := setupCLI(t)

	out, err := execute(t, commands.NewConfigCommand(), "set", "portal_id", "62515")
	require.NoError(t, err)
	assert.Equal(t, "Set portal_id to 62515\n", out)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "portal_id:")
	assert.Contains(t, string(data), "62515")
	assert.Equal(t, "62515", viper.GetString("portal_id"))
}

func TestConfigSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "secret key", args: []string{"set", "api_key", "demo"}, wantErr: constants.ErrSecretNotDisplayed},
		{name: "unknown key", args: []string{"set", "colour", "blue"}, wantErr: constants.ErrUnknownConfigKey},
		{name: "invalid output", args: []string{"set", "output", "xml"}, wantErr: constants.ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)

			_, err := execute(t, commands.NewConfigCommand(), tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigShow_MasksSecrets(t *testing.T) {
	setupCLI(t)
	viper.Set("portal_id", "62515")
	viper.Set("refresh_token", "very-secret")

	out, err := execute(t, commands.NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "very-secret")

	var shown map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "62515", shown["portal_id"])
	assert.Equal(t, "********", shown["refresh_token"])
}

func TestConfigShow_Table(t *testing.T) {
	setupCLI(t)
	viper.Set("output", "table")
	viper.Set("base_url", "https://api.hubapi.com")
	require.NoError(t, keyring.Set(constants.KeyringService, constants.KeyringAPIKeyUser, "demo"))

	out, err := execute(t, commands.NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "https://api.hubapi.com")
	assert.Contains(t, out, "stored in keyring")
	assert.NotContains(t, out, "demo")
}

func TestConfigPersister_UpdateTokens(t *testing.T) {
	configFile := setupCLI(t)
	viper.Set("client_id", "client")

	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := commands.NewConfigPersister().UpdateTokens("fresh-token", expiresAt, "refresh-2")
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", viper.GetString("access_token"))
	assert.Equal(t, "refresh-2", viper.GetString("refresh_token"))

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "access_token: fresh-token")
	assert.Contains(t, string(data), "refresh_token: refresh-2")
	assert.Contains(t, string(data), "client_id: client")
	assert.Contains(t, string(data), "token_expires_at: 2026-01-02T03:04:05Z")
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, commands.NewVersionCommand("1.2.3", "abc123", "2026-01-01"))
	require.NoError(t, err)

	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, commands.VersionInfo{Version: "1.2.3", Commit: "abc123", Built: "2026-01-01"}, info)
}
