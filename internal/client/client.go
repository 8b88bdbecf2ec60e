// Package client talks to the checkout API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/domain"
)

const maxResponseBytes = 1 << 20

type Config struct {
	BaseURL string
	// Timeout bounds every request, including the simulated latency.
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
	// HTTPClient is optional; its transport is wrapped with otelhttp.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client implements the checkout gateway and the summary fetcher.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc := *base
	hc.Transport = otelhttp.NewTransport(transport)

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "checkout-api",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    &hc,
		breaker: breaker,
		logger:  logger,
	}
}

// countsAsSuccess keeps client errors and caller cancellation out of the
// breaker's failure count.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code < http.StatusInternalServerError
	}
	return errors.Is(err, context.Canceled)
}

func (c *Client) SubmitAccount(ctx context.Context, details domain.AccountDetails) error {
	return c.do(ctx, http.MethodPost, "/checkout/account", details, nil)
}

func (c *Client) SubmitShipping(ctx context.Context, details domain.ShippingDetails) error {
	return c.do(ctx, http.MethodPost, "/checkout/shipping", details, nil)
}

func (c *Client) SubmitPayment(ctx context.Context, details domain.PaymentDetails) error {
	return c.do(ctx, http.MethodPost, "/checkout/payment", details, nil)
}

// CompleteOrder sends the whole form and returns the order confirmation.
func (c *Client) CompleteOrder(ctx context.Context, form domain.CheckoutForm) (*domain.OrderConfirmation, error) {
	var confirmation domain.OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/checkout/complete", form, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) FetchSummary(ctx context.Context) (*domain.OrderSummary, error) {
	var summary domain.OrderSummary
	if err := c.do(ctx, http.MethodGet, "/checkout/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
		}
		c.logger.Warn("checkout api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", ErrRequestFailed, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %w", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", ErrRequestFailed, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(payload)}
	}
	return payload, nil
}

// errorMessage extracts the "error" field of an error body, if present.
func errorMessage(payload []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Error
}
