//go:build integration

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Version(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	var info map[string]string
	require.NoError(t, runner.RunJSON(&info, "version"))
	assert.NotEmpty(t, info["version"])
}

func TestCLI_Topics(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	var topics []map[string]interface{}
	require.NoError(t, runner.RunJSON(&topics, "topics", "list"))

	for _, topic := range topics {
		assert.NotEmpty(t, topic["name"])
	}
}

func TestCLI_DealPropertiesYAML(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("properties", "deals", "get", "dealname", "--output", "yaml")
	require.NoError(t, err, stderr)
	AssertYAMLOutput(t, stdout)
	assert.Contains(t, stdout, "name: dealname")
}

func TestCLI_BlogPosts(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	if config.BlogID == "" {
		t.Skip("HUBSPOT_BLOG_ID not set")
	}

	runner := NewCommandRunner(config, t)

	var posts []map[string]interface{}
	require.NoError(t, runner.RunJSON(&posts, "blogs", "posts", config.BlogID, "--jq", "."))
}

func TestCLI_MissingDeal(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("deals", "get", "1")
	require.Error(t, err)
	assert.Contains(t, stderr, "not found")
}
