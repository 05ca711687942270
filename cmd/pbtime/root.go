package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/blockberries/pbtime"
	pbtimegrpc "github.com/blockberries/pbtime/grpc"
	"github.com/blockberries/pbtime/local"
	"github.com/blockberries/pbtime/server"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const dialTimeout = 5 * time.Second

type rootOptions struct {
	configPath string
	addr       string
	codec      string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "pbtime",
		Short:         "Convert and serve protobuf timestamps",
		Version:       "v0.1.0",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file.")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "Clock service address. Empty uses an in-process clock (serve: overrides listen).")
	root.PersistentFlags().StringVar(&opts.codec, "codec", "", "Wire codec: cramberry or json. Overrides the config file.")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enables debug logging.")

	root.AddCommand(
		newServeCmd(opts),
		newNowCmd(opts),
		newFormatCmd(opts),
		newParseCmd(opts),
	)
	return root
}

// load reads the config file and applies flag overrides.
func (o *rootOptions) load() (Config, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return Config{}, err
	}
	if o.codec != "" {
		cfg.Codec = o.codec
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (o *rootOptions) logger(cmd *cobra.Command, cfg Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// serverOptions turns the config into server.Options.
func serverOptions(cfg Config, logger *slog.Logger) []server.Option {
	opts := []server.Option{server.WithLogger(logger)}
	if cfg.FixedTime != nil {
		// Validate already checked that the instant converts.
		at, _ := cfg.FixedTime.ToTime()
		opts = append(opts, server.WithTimeSource(func() time.Time { return at }))
	}
	return opts
}

// connect opens a remote clock when --addr is set, or an in-process one.
func (o *rootOptions) connect(ctx context.Context, cmd *cobra.Command) (pbtime.Connection, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	logger := o.logger(cmd, cfg)
	if o.addr == "" {
		return local.NewConnection(serverOptions(cfg, logger)...), nil
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	conn, err := pbtimegrpc.DialCodec(ctx, o.addr, pbtimegrpc.CodecByName(cfg.Codec),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", o.addr, err)
	}
	logger.Debug("connected", slog.String("addr", o.addr), slog.String("codec", cfg.Codec))
	return conn, nil
}
