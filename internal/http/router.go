// Package http exposes the mock checkout API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout time.Duration
}

// NewRouter mounts the checkout endpoints and the health check.
func NewRouter(h *CheckoutHandler, cfg RouterConfig, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/account", h.SubmitAccount)
		r.Post("/shipping", h.SubmitShipping)
		r.Post("/payment", h.SubmitPayment)
		r.Post("/complete", h.CompleteOrder)
		r.Get("/summary", h.GetSummary)
	})

	return otelhttp.NewHandler(r, "checkout-api")
}
