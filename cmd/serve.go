package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and share pages",
		Long: `Starts the HTTP server exposing brief generation and share links.

A missing API key or store configuration does not stop the server; the
affected routes answer with a configuration error instead. An invalid auth
configuration does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			defer provider.Close()
			return serveRun(cmd.Context(), provider, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr, or :$PORT)")
	return cmd
}

// serveOptions builds the server options from the provider. Generator and
// store failures are recorded for the affected routes.
func serveOptions(ctx context.Context, provider *Provider) (server.Options, error) {
	cfg := provider.AppConfig
	auth, err := cfg.ResolveAuthMode()
	if err != nil {
		return server.Options{}, err
	}
	opts := server.Options{Auth: auth, BaseURL: cfg.Server.BaseURL}

	generator, err := provider.Generator(ctx)
	if err != nil {
		Log.Warn().Err(err).Msg("Brief generation is not configured")
		opts.GeneratorErr = err
	} else {
		opts.Generator = generator
	}

	shares, err := provider.Shares(ctx)
	if err != nil {
		Log.Warn().Err(err).Msg("Share links are not configured")
		opts.SharesErr = err
	} else {
		opts.Shares = shares
	}
	return opts, nil
}

// serveRun starts the server and blocks until it shuts down.
func serveRun(ctx context.Context, provider *Provider, addr string) error {
	opts, err := serveOptions(ctx, provider)
	if err != nil {
		return err
	}
	srv, err := server.New(opts)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = provider.AppConfig.Server.ListenAddr()
	}
	return srv.Run(ctx, addr, provider.AppConfig.Server.ShutdownTimeout)
}
