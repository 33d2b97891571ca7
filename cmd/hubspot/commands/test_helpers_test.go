package commands_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// setupCLI resets global CLI state: a temporary config file, an in-memory
// keyring and no credentials. It returns the config file path.
func setupCLI(t *testing.T) string {
	t.Helper()

	viper.Reset()
	keyring.MockInit()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("output", "json")

	return configFile
}

// setupAPI points the CLI at a test server using API-key authentication.
func setupAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	setupCLI(t)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	viper.Set("base_url", server.URL)
	viper.Set("forms_base_url", server.URL)
	viper.Set("tracking_base_url", server.URL)
	viper.Set("api_key", "demo")
	viper.Set("portal_id", "62515")

	return server
}

// execute runs cmd with args and returns everything written to its output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
