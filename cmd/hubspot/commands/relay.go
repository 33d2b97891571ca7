package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/logging"
	"github.com/fivetwenty-io/hubspot-client/internal/relay"
)

// NewRelayCommand creates the relay command, which tracks events published
// on a NATS subject until interrupted.
func NewRelayCommand() *cobra.Command {
	var (
		subject string
		queue   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay NATS messages to behavioral events",
		Long: `Subscribe to a NATS subject and track every message as a behavioral event.

Messages are JSON objects: {"event_id": "...", "email": "...", "properties": {...}}.
Request-reply publishers receive {"tracked": true|false, "error": "..."}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			natsURL := viper.GetString("nats_url")
			if natsURL == "" {
				return constants.ErrNATSURLRequired
			}

			if subject == "" {
				return constants.ErrRelaySubjectNeeded
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			level := "info"
			if viper.GetBool("verbose") {
				level = "debug"
			}

			logger := logging.NewConsole(os.Stderr, level)

			conn, err := relay.Connect(natsURL, "hubspot-relay")
			if err != nil {
				return err
			}
			defer conn.Close()

			eventRelay, err := relay.New(conn, client.Events(), logger, relay.Config{
				Subject: subject,
				Queue:   queue,
				Timeout: timeout,
			})
			if err != nil {
				return fmt.Errorf("failed to create relay: %w", err)
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = eventRelay.Start(ctx)
			if err != nil {
				return fmt.Errorf("failed to start relay: %w", err)
			}

			<-ctx.Done()

			err = eventRelay.Stop()
			if err != nil {
				return fmt.Errorf("failed to stop relay: %w", err)
			}

			return drainAndReport(cmd, conn.Drain, eventRelay.Stats())
		},
	}

	cmd.Flags().String("nats-url", "", "NATS server URL (env HUBSPOT_NATS_URL)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject carrying events")
	cmd.Flags().StringVar(&queue, "queue", "", "queue group shared by relay instances")
	cmd.Flags().DurationVar(&timeout, "timeout", relay.DefaultTimeout, "per-event tracking timeout")

	_ = viper.BindPFlag("nats_url", cmd.Flags().Lookup("nats-url"))

	return cmd
}

func drainAndReport(cmd *cobra.Command, drain func() error, stats relay.Stats) error {
	err := drain()
	if err != nil {
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Received %d, tracked %d, rejected %d, failed %d\n",
		stats.Received, stats.Tracked, stats.Rejected, stats.Failed)

	return nil
}
