// Package server exposes brief generation and share links over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/config"
	"github.com/hayato-coosy/kouseian/internal/present"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// BriefGenerator turns a request into a normalized result.
type BriefGenerator interface {
	GenerateBrief(ctx context.Context, req brief.Request) (brief.Result, error)
}

// ShareService persists and resolves shared results.
type ShareService interface {
	Create(ctx context.Context, result brief.Result) (string, error)
	Resolve(ctx context.Context, id string) (brief.Result, error)
}

// Options configures a Server. A nil Generator or Shares leaves the matching
// routes answering with a configuration error; GeneratorErr and SharesErr
// explain what is missing.
type Options struct {
	Generator    BriefGenerator
	GeneratorErr error
	Shares       ShareService
	SharesErr    error
	Renderer     *present.Renderer
	Auth         config.AuthMode
	// BaseURL prefixes share links. When empty the request host is used.
	BaseURL string
}

// Server holds the HTTP handlers.
type Server struct {
	generator    BriefGenerator
	generatorErr error
	shares       ShareService
	sharesErr    error
	renderer     *present.Renderer
	auth         config.AuthMode
	baseURL      string
}

// New builds a Server. The embedded templates are parsed when no Renderer
// is given.
func New(opts Options) (*Server, error) {
	renderer := opts.Renderer
	if renderer == nil {
		var err error
		renderer, err = present.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to build renderer: %w", err)
		}
	}
	return &Server{
		generator:    opts.Generator,
		generatorErr: opts.GeneratorErr,
		shares:       opts.Shares,
		sharesErr:    opts.SharesErr,
		renderer:     renderer,
		auth:         opts.Auth,
		baseURL:      opts.BaseURL,
	}, nil
}

// Run listens on addr and serves until ctx is done or the process receives
// SIGINT or SIGTERM, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Bool("basic_auth", s.auth.Enabled()).Msg("Server starting")
		serverErrors <- srv.Serve(ln)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("Starting graceful shutdown")
	case <-ctx.Done():
		log.Info().Msg("Context done, starting graceful shutdown")
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
		if closeErr := srv.Close(); closeErr != nil {
			return fmt.Errorf("could not stop server: shutdown error: %v, close error: %v", err, closeErr)
		}
		return fmt.Errorf("could not stop server gracefully: %w", err)
	}
	<-serverErrors

	log.Info().Msg("Server stopped cleanly")
	return nil
}
