// Command auditlog consumes listing events from RabbitMQ and appends one
// line per event to <log-dir>/listing.log.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/queue"
)

func main() {
	var logDir string
	cmd := &cobra.Command{
		Use:           "auditlog",
		Short:         "Append listing events to the audit log",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			broker := config.LoadBrokerConfig()
			if broker.URL == "" {
				return errors.New("RABBITMQ_URL is not set")
			}
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := &queue.Consumer{URL: broker.URL, Queue: broker.Queue, LogDir: logDir, Log: log}
			log.Info("audit consumer started", "queue", broker.Queue, "dir", logDir)
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("audit consumer stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&logDir, "log-dir", "logs", "directory receiving "+queue.AuditLogFile)

	if err := cmd.Execute(); err != nil {
		slog.Error("auditlog exited", "err", err)
		os.Exit(1)
	}
}
