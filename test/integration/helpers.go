//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIKey      string
	AccessToken string
	PortalID    string
	BlogID      string
	BinaryPath  string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:      os.Getenv("HUBSPOT_API_KEY"),
		AccessToken: os.Getenv("HUBSPOT_ACCESS_TOKEN"),
		PortalID:    os.Getenv("HUBSPOT_PORTAL_ID"),
		BlogID:      os.Getenv("HUBSPOT_BLOG_ID"),
		BinaryPath:  getBinaryPath(),
		Verbose:     os.Getenv("HUBSPOT_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the hubspot binary.
func getBinaryPath() string {
	if path := os.Getenv("HUBSPOT_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../hubspot",
		"./hubspot",
		"../hubspot",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "hubspot"
}

// SkipIfMissingConfig skips the test without credentials or binary.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" && config.AccessToken == "" {
		t.Skip("HUBSPOT_API_KEY or HUBSPOT_ACCESS_TOKEN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("hubspot binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs hubspot commands against an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a hubspot command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), runner.credentialEnv()...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a command with JSON output and decodes the result.
func (runner *CommandRunner) RunJSON(v interface{}, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		return fmt.Errorf("command failed: %w: %s", err, stderr)
	}

	err = json.Unmarshal([]byte(stdout), v)
	if err != nil {
		return fmt.Errorf("output is not JSON: %w: %s", err, stdout)
	}

	return nil
}

func (runner *CommandRunner) credentialEnv() []string {
	env := []string{"HUBSPOT_PORTAL_ID=" + runner.config.PortalID}

	if runner.config.AccessToken != "" {
		return append(env, "HUBSPOT_ACCESS_TOKEN="+runner.config.AccessToken, "HUBSPOT_API_KEY=")
	}

	return append(env, "HUBSPOT_API_KEY="+runner.config.APIKey)
}

// AssertYAMLOutput verifies command output parses as YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var decoded interface{}

	err := yaml.Unmarshal([]byte(output), &decoded)
	if err != nil || decoded == nil {
		t.Errorf("Output does not appear to be YAML: %s", output)
	}
}

func formatID(id float64) string {
	return strconv.FormatInt(int64(id), 10)
}
