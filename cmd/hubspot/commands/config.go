package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hubspot-client/internal/client"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/internal/logging"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Config represents the CLI configuration file.
type Config struct {
	Output          string     `json:"output,omitempty"            yaml:"output,omitempty"`
	BaseURL         string     `json:"base_url,omitempty"          yaml:"base_url,omitempty"`
	PortalID        string     `json:"portal_id,omitempty"         yaml:"portal_id,omitempty"`
	FormsBaseURL    string     `json:"forms_base_url,omitempty"    yaml:"forms_base_url,omitempty"`
	TrackingBaseURL string     `json:"tracking_base_url,omitempty" yaml:"tracking_base_url,omitempty"`
	AccessToken     string     `json:"access_token,omitempty"      yaml:"access_token,omitempty"`
	RefreshToken    string     `json:"refresh_token,omitempty"     yaml:"refresh_token,omitempty"`
	ClientID        string     `json:"client_id,omitempty"         yaml:"client_id,omitempty"`
	ClientSecret    string     `json:"client_secret,omitempty"     yaml:"client_secret,omitempty"`
	TokenExpiresAt  *time.Time `json:"token_expires_at,omitempty"  yaml:"token_expires_at,omitempty"`
	LastRefreshed   *time.Time `json:"last_refreshed,omitempty"    yaml:"last_refreshed,omitempty"`
}

// settableKeys maps the keys accepted by "config set" to their setters.
var settableKeys = map[string]func(*Config, string){
	"output":            func(c *Config, v string) { c.Output = v },
	"base_url":          func(c *Config, v string) { c.BaseURL = v },
	"portal_id":         func(c *Config, v string) { c.PortalID = v },
	"forms_base_url":    func(c *Config, v string) { c.FormsBaseURL = v },
	"tracking_base_url": func(c *Config, v string) { c.TrackingBaseURL = v },
	"client_id":         func(c *Config, v string) { c.ClientID = v },
}

var secretKeys = map[string]bool{
	"api_key":       true,
	"access_token":  true,
	"refresh_token": true,
	"client_secret": true,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the HubSpot CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSecrets(loadConfig())

			return renderOutput(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Available keys: output, base_url, portal_id, forms_base_url, tracking_base_url, client_id.
Credentials are stored with 'hubspot login'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if secretKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrSecretNotDisplayed, key)
			}

			setter, ok := settableKeys[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			if key == "output" {
				err := validateOutputFormat(value)
				if err != nil {
					return err
				}
			}

			config := loadConfig()
			setter(config, value)

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			viper.Set(key, value)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return nil
		},
	}
}

// loadConfig reads the file-backed settings from viper.
func loadConfig() *Config {
	config := &Config{
		Output:          viper.GetString("output"),
		BaseURL:         viper.GetString("base_url"),
		PortalID:        viper.GetString("portal_id"),
		FormsBaseURL:    viper.GetString("forms_base_url"),
		TrackingBaseURL: viper.GetString("tracking_base_url"),
		AccessToken:     viper.GetString("access_token"),
		RefreshToken:    viper.GetString("refresh_token"),
		ClientID:        viper.GetString("client_id"),
		ClientSecret:    viper.GetString("client_secret"),
	}

	if expiresAt := viper.GetTime("token_expires_at"); !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	if refreshed := viper.GetTime("last_refreshed"); !refreshed.IsZero() {
		config.LastRefreshed = &refreshed
	}

	return config
}

// configFilePath returns the file in use, defaulting to ~/.hubspot/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".hubspot", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func maskSecrets(config *Config) *Config {
	masked := *config

	for _, secret := range []*string{&masked.AccessToken, &masked.RefreshToken, &masked.ClientSecret} {
		if *secret != "" {
			*secret = "********"
		}
	}

	return &masked
}

func displayConfigTable(w io.Writer, config *Config) error {
	rows := map[string]string{
		"output":            config.Output,
		"base_url":          config.BaseURL,
		"portal_id":         config.PortalID,
		"forms_base_url":    config.FormsBaseURL,
		"tracking_base_url": config.TrackingBaseURL,
		"access_token":      config.AccessToken,
		"refresh_token":     config.RefreshToken,
		"client_id":         config.ClientID,
		"client_secret":     config.ClientSecret,
		"api_key":           keyringStatus(),
	}

	if config.TokenExpiresAt != nil {
		rows["token_expires_at"] = config.TokenExpiresAt.Format(time.RFC3339)
	}

	keys := make([]string, 0, len(rows))
	for key := range rows {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, key := range keys {
		if rows[key] == "" {
			continue
		}

		_ = table.Append([]string{titleCase(key), rows[key]})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func keyringStatus() string {
	_, err := keyring.Get(constants.KeyringService, constants.KeyringAPIKeyUser)
	if err != nil {
		return ""
	}

	return "stored in keyring"
}

// hubspotConfig builds a client configuration from flags, environment,
// config file and keyring, in that order of precedence.
func hubspotConfig() (*hubspot.Config, error) {
	config := hubspot.DefaultConfig()

	if baseURL := viper.GetString("base_url"); baseURL != "" {
		config.BaseURL = baseURL
	}

	config.PortalID = viper.GetString("portal_id")
	config.AccessToken = viper.GetString("access_token")
	config.RefreshToken = viper.GetString("refresh_token")
	config.ClientID = viper.GetString("client_id")
	config.ClientSecret = viper.GetString("client_secret")
	config.APIKey = viper.GetString("api_key")

	if config.APIKey == "" && config.AccessToken == "" && config.RefreshToken == "" {
		apiKey, err := keyring.Get(constants.KeyringService, constants.KeyringAPIKeyUser)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("failed to read API key from keyring: %w", err)
		}

		config.APIKey = apiKey
	}

	if config.APIKey == "" && config.AccessToken == "" && config.RefreshToken == "" {
		return nil, constants.ErrNoCredentials
	}

	interceptors := hubspot.NewInterceptorChain()
	interceptors.AddRequestInterceptor(hubspot.RequestIDInterceptor())

	if viper.GetBool("verbose") {
		logger := logging.NewConsole(os.Stderr, "debug")
		config.Logger = logger
		config.Debug = true

		interceptors.AddRequestInterceptor(hubspot.LoggingInterceptor(logger))
		interceptors.AddResponseInterceptor(hubspot.LoggingResponseInterceptor(logger))
	}

	config.Interceptors = interceptors

	return config, nil
}

// createClient creates a HubSpot client from the current configuration.
// Refreshed OAuth2 tokens are written back to the config file.
func createClient() (*client.Client, error) {
	config, err := hubspotConfig()
	if err != nil {
		return nil, err
	}

	opts := []http.Option{
		http.WithPolicyBaseURLs(viper.GetString("forms_base_url"), viper.GetString("tracking_base_url")),
	}

	hubspotClient, err := client.NewWithPersister(config, NewConfigPersister(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return hubspotClient, nil
}
