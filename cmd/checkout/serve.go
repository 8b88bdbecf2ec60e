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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/config"
	h "github.com/fjod/go_checkout/internal/http"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock checkout API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", ":"+a.cfg.HTTPPort)
			if err != nil {
				return codeError(2, "listen on :%s: %s", a.cfg.HTTPPort, err)
			}
			return serve(ctx, ln, a.cfg, a.logger)
		},
	}

	cmd.Flags().String("port", "", "HTTP port (overrides HTTP_PORT)")
	_ = a.v.BindPFlag(config.KeyHTTPPort, cmd.Flags().Lookup("port"))
	return cmd
}

func newAPIHandler(cfg *config.Config, logger *zap.Logger) http.Handler {
	handler := h.NewCheckoutHandler(h.Delays{
		Account:  cfg.AccountDelay,
		Shipping: cfg.ShippingDelay,
		Payment:  cfg.PaymentDelay,
		Complete: cfg.CompleteDelay,
		Summary:  cfg.SummaryDelay,
	}, cfg.MaxRequestBodySize, logger)

	return h.NewRouter(handler, h.RouterConfig{RequestTimeout: cfg.RequestTimeout}, logger)
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, cfg *config.Config, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:      newAPIHandler(cfg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("checkout API starting", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return codeError(2, "server error: %s", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return codeError(2, "server forced to shutdown: %s", err)
	}
	logger.Info("server exited")
	return nil
}
