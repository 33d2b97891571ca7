package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/hubspot-client/cmd/hubspot/commands"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "hubspot",
	Short: "HubSpot CRM CLI",
	Long: `A command-line interface for the HubSpot CRM APIs.

This CLI reads deals, engagements, contact lists, properties, blogs and topics,
submits forms, tracks behavioral events and relays events from NATS.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.hubspot/config.yml)")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL")
	rootCmd.PersistentFlags().String("api-key", "", "developer API key")
	rootCmd.PersistentFlags().String("access-token", "", "OAuth2 or private app access token")
	rootCmd.PersistentFlags().String("portal-id", "", "HubSpot portal (account) id")
	rootCmd.PersistentFlags().StringP("output", "o", constants.OutputFormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("jq", "", "jq expression applied to the JSON result")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper: --base-url becomes base_url
	bindFlags(rootCmd.PersistentFlags())

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewDealsCommand())
	rootCmd.AddCommand(commands.NewEngagementsCommand())
	rootCmd.AddCommand(commands.NewListsCommand())
	rootCmd.AddCommand(commands.NewPropertiesCommand())
	rootCmd.AddCommand(commands.NewBlogsCommand())
	rootCmd.AddCommand(commands.NewTopicsCommand())
	rootCmd.AddCommand(commands.NewEventsCommand())
	rootCmd.AddCommand(commands.NewFormsCommand())
	rootCmd.AddCommand(commands.NewRelayCommand())
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = viper.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), flag)
	})
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".hubspot")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.hubspot/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// HUBSPOT_API_KEY, HUBSPOT_PORTAL_ID, ...
	viper.SetEnvPrefix("HUBSPOT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
