package http

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/domain"
)

const minPasswordLength = 8

// CheckoutHandler serves the mock checkout endpoints. Nothing is stored
// between calls.
type CheckoutHandler struct {
	delays       Delays
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewCheckoutHandler(delays Delays, maxBodyBytes int64, logger *zap.Logger) *CheckoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutHandler{
		delays:       delays,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// POST /checkout/account
func (h *CheckoutHandler) SubmitAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.AccountDetails
	if !h.decode(w, r, &req) {
		return
	}
	if !h.wait(w, r, h.delays.Account) {
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Email and password are required")
		return
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, "invalid_request", "Password too short")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Account details saved"})
}

// POST /checkout/shipping
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var req domain.ShippingDetails
	if !h.decode(w, r, &req) {
		return
	}
	if !h.wait(w, r, h.delays.Shipping) {
		return
	}

	if anyEmpty(req.AddressLine1, req.StreetName, req.Postcode, req.ShippingMethod) {
		respondError(w, http.StatusBadRequest, "invalid_request", "All shipping fields are required")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Shipping details saved"})
}

// POST /checkout/payment
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentDetails
	if !h.decode(w, r, &req) {
		return
	}
	if !h.wait(w, r, h.delays.Payment) {
		return
	}

	if anyEmpty(req.CardName, req.CardNumber, req.ExpMonth, req.ExpYear, req.CVC) {
		respondError(w, http.StatusBadRequest, "invalid_request", "All payment fields are required")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Payment details verified"})
}

// POST /checkout/complete
//
// The body is not read: completion always succeeds.
func (h *CheckoutHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	if !h.wait(w, r, h.delays.Complete) {
		return
	}

	orderID := newOrderID()
	h.logger.Info("order completed", zap.String("order_id", orderID))

	respondJSON(w, http.StatusOK, domain.OrderConfirmation{
		Success: true,
		OrderID: orderID,
		Message: "Order completed successfully",
	})
}

// GET /checkout/summary
func (h *CheckoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if !h.wait(w, r, h.delays.Summary) {
		return
	}
	respondJSON(w, http.StatusOK, cannedSummary())
}

func (h *CheckoutHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := decodeJSON(w, r, h.maxBodyBytes, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errBodyTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
	default:
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	}
	return false
}

// wait applies the endpoint latency. It reports false when the client went
// away or the request deadline passed first.
func (h *CheckoutHandler) wait(w http.ResponseWriter, r *http.Request, d time.Duration) bool {
	if err := simulateLatency(r.Context(), d); err != nil {
		h.logger.Debug("request abandoned during simulated latency",
			zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "request_cancelled", "request cancelled")
		return false
	}
	return true
}

func anyEmpty(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}

// newOrderID returns a fresh, non-persistent order reference.
func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func cannedSummary() domain.OrderSummary {
	price := decimal.RequireFromString("320.45")
	return domain.OrderSummary{
		Items: []domain.OrderItem{
			{
				ID:       "1",
				Name:     "Sony Wireless Headphones",
				Price:    price,
				Image:    "/sony_headphones.jpg",
				Quantity: 1,
			},
		},
		Subtotal: price,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Total:    price,
		Currency: "GBP",
	}
}
