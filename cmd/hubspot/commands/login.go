package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
)

// readPassword reads a secret from the terminal without echo.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		token        string
		refreshToken string
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store HubSpot credentials",
		Long: `Store HubSpot credentials for later commands.

An API key (from --api-key, HUBSPOT_API_KEY or an interactive prompt) is saved
in the system keyring. OAuth2 refresh tokens and private app tokens are saved
in the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if portalID := viper.GetString("portal_id"); portalID != "" {
				config.PortalID = portalID
			}

			switch {
			case refreshToken != "":
				if clientID == "" || clientSecret == "" {
					return fmt.Errorf("%w: --client-id and --client-secret are required with --refresh-token", constants.ErrNoCredentials)
				}

				config.RefreshToken = refreshToken
				config.ClientID = clientID
				config.ClientSecret = clientSecret
				config.AccessToken = ""
				config.TokenExpiresAt = nil
			case token != "":
				config.AccessToken = token
				config.RefreshToken = ""
				config.TokenExpiresAt = nil
			default:
				apiKey, err := resolveAPIKey(cmd)
				if err != nil {
					return err
				}

				err = keyring.Set(constants.KeyringService, constants.KeyringAPIKeyUser, apiKey)
				if err != nil {
					return fmt.Errorf("failed to store API key in keyring: %w", err)
				}
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Credentials saved")

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "private app access token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "OAuth2 refresh token")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client id")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")

	return cmd
}

func resolveAPIKey(cmd *cobra.Command) (string, error) {
	apiKey := viper.GetString("api_key")

	if apiKey == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "API key: ")

		secret, err := readPassword()

		_, _ = fmt.Fprintln(cmd.OutOrStdout())

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		apiKey = string(secret)
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", constants.ErrEmptyAPIKey
	}

	return apiKey, nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored HubSpot credentials",
		Long:  "Delete the API key from the system keyring and clear tokens from the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := keyring.Delete(constants.KeyringService, constants.KeyringAPIKeyUser)
			if err != nil && !errors.Is(err, keyring.ErrNotFound) {
				return fmt.Errorf("failed to remove API key from keyring: %w", err)
			}

			config := loadConfig()
			config.AccessToken = ""
			config.RefreshToken = ""
			config.ClientSecret = ""
			config.TokenExpiresAt = nil
			config.LastRefreshed = nil

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			viper.Set("access_token", "")
			viper.Set("refresh_token", "")
			viper.Set("client_secret", "")

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}
