package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pbtimegrpc "github.com/blockberries/pbtime/grpc"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the clock gRPC service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Listen = opts.addr
			}
			logger := opts.logger(cmd, cfg)

			lis, err := net.Listen("tcp", cfg.Listen)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Listen, err)
			}

			gs := pbtimegrpc.NewGRPCServer(serverOptions(cfg, logger)...)
			s := gs.NewServer()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- s.Serve(lis) }()
			logger.Info("serving", slog.String("addr", lis.Addr().String()))

			select {
			case err := <-errCh:
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
				logger.Info("shutting down")
				gs.Stop(s)
				return nil
			}
		},
	}
}
