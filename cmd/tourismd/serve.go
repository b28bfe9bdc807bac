package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tourismd/internal/config"
	"tourismd/internal/httpapi"
)

const shutdownGrace = 10 * time.Second

// fnServe is swapped in tests.
var fnServe = runServe

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP classification API",
		Example: "  tourismd serve\n" +
			"  tourismd serve --config tourismd.yaml --port 9000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return fnServe(ctx, cfg, log)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides PORT)")
	return cmd
}

// runServe serves until ctx is canceled, then drains in-flight requests and
// retires the model backend.
func runServe(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	mgr, cleanup, err := newManager(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetPredictTimeout(cfg.RequestTimeout())
	httpapi.SetMaxBatchItems(cfg.MaxBatchItems)
	httpapi.SetBatchConcurrency(cfg.BackendConcurrency)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(baseCtx)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("project", cfg.ProjectName).
			Str("version", cfg.Version).
			Str("model_type", cfg.ModelType).
			Str("model", cfg.ZeroShotModel).
			Msg("tourismd listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Load the default model in the background so /health reports loading
	// meanwhile; a failure leaves lazy initialization to the first predict.
	go func() {
		if err := mgr.Initialize(baseCtx, nil); err != nil {
			log.Error().Err(err).Msg("startup model initialization failed; will retry on first prediction")
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	// Cancel in-flight predictions, then stop accepting and drain.
	cancelBase()
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	if err := mgr.Close(); err != nil {
		log.Warn().Err(err).Msg("model backend close error")
	}
	return nil
}
