package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/cart"
	"github.com/fjod/go_checkout/internal/client"
	"github.com/fjod/go_checkout/internal/config"
	"github.com/fjod/go_checkout/internal/i18n"
	"github.com/fjod/go_checkout/internal/terminal"
	"github.com/fjod/go_checkout/internal/wizard"
)

func newRunCmd(a *app) *cobra.Command {
	var embedded bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Walk through the checkout wizard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			baseURL := a.cfg.APIBaseURL
			if embedded {
				ln, err := net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					return codeError(2, "listen: %s", err)
				}
				serverCtx, cancel := context.WithCancel(ctx)
				done := make(chan struct{})
				go func() {
					defer close(done)
					if err := serve(serverCtx, ln, a.cfg, a.logger); err != nil {
						a.logger.Error("embedded API stopped", zap.Error(err))
					}
				}()
				defer func() {
					cancel()
					<-done
				}()
				baseURL = "http://" + ln.Addr().String()
			}

			return runWizard(ctx, a, baseURL)
		},
	}

	cmd.Flags().BoolVar(&embedded, "embedded", false, "Start the mock API in-process")
	cmd.Flags().String("api", "", "Checkout API base URL (overrides API_BASE_URL)")
	cmd.Flags().String("locale", "", "UI locale: en or fr (overrides LOCALE)")
	_ = a.v.BindPFlag(config.KeyAPIBaseURL, cmd.Flags().Lookup("api"))
	_ = a.v.BindPFlag(config.KeyLocale, cmd.Flags().Lookup("locale"))
	return cmd
}

func runWizard(ctx context.Context, a *app, baseURL string) error {
	cfg := a.cfg
	tr := i18n.New(cfg.Locale)

	api := client.New(client.Config{
		BaseURL:     baseURL,
		Timeout:     cfg.RequestTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
		Logger:      a.logger,
	})

	session := terminal.NewSession(os.Stdin, os.Stdout, tr, a.logger)
	wiz := wizard.New(api, wizard.Options{
		Notifier:      session,
		Navigator:     session,
		Translator:    tr,
		RedirectDelay: cfg.RedirectDelay,
		Logger:        a.logger,
	})
	store := cart.NewStore(api, a.logger)

	if err := session.Run(ctx, wiz, store); err != nil && ctx.Err() == nil {
		return codeError(1, "checkout session: %s", err)
	}
	return nil
}
