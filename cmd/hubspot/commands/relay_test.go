package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hubspot-client/cmd/hubspot/commands"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/relay"
)

func TestNewRelayCommand(t *testing.T) {
	setupCLI(t)

	cmd := commands.NewRelayCommand()
	assert.Equal(t, "relay", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("nats-url"))
	assert.NotNil(t, cmd.Flags().Lookup("subject"))
	assert.NotNil(t, cmd.Flags().Lookup("queue"))
	assert.Equal(t, relay.DefaultTimeout.String(), cmd.Flags().Lookup("timeout").DefValue)
}

func TestRelay_RequiresNATSURL(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, commands.NewRelayCommand(), "--subject", "hubspot.events")
	require.ErrorIs(t, err, constants.ErrNATSURLRequired)
}

func TestRelay_RequiresSubject(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, commands.NewRelayCommand(), "--nats-url", "nats://127.0.0.1:4222")
	require.ErrorIs(t, err, constants.ErrRelaySubjectNeeded)
}
