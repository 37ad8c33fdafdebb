package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/worker"
)

func newWorkerCmd(root *rootOptions) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis requests from AMQP until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amqpCfg := root.cfg.AMQP
			if url != "" {
				amqpCfg.URL = url
			}
			if amqpCfg.URL == "" {
				return fmt.Errorf("AMQP URL required (set AMQP_URL, amqp.url in config, or --amqp-url)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			analyzer, err := root.analyzer(ctx)
			if err != nil {
				return err
			}

			w := worker.New(worker.Config{
				URL:      amqpCfg.URL,
				Queue:    amqpCfg.Queue,
				Exchange: amqpCfg.Exchange,
				Workers:  amqpCfg.Workers,
				Prefetch: amqpCfg.Prefetch,
				Timeout:  root.cfg.ExtractTimeoutDuration(),

				ResumeRoot: root.cfg.UploadDir,
			}, analyzer)
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&url, "amqp-url", "", "AMQP URL (overrides AMQP_URL)")
	return cmd
}
