// Package wizard drives the checkout flow: account, shipping, payment, then
// complete. Each step is validated locally before its endpoint is called and
// the flow only ever moves forward.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/i18n"
	"github.com/fjod/go_checkout/internal/validation"
)

const (
	DefaultRedirectDelay = 2 * time.Second
	HomePath             = "/"
)

// Gateway submits step payloads to the checkout API.
type Gateway interface {
	SubmitAccount(ctx context.Context, details domain.AccountDetails) error
	SubmitShipping(ctx context.Context, details domain.ShippingDetails) error
	SubmitPayment(ctx context.Context, details domain.PaymentDetails) error
	CompleteOrder(ctx context.Context, form domain.CheckoutForm) (*domain.OrderConfirmation, error)
}

// Notifier shows transient success and error notices.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Navigator interface {
	Navigate(path string)
}

type Confirmer interface {
	Confirm(prompt string) bool
}

type Options struct {
	Notifier      Notifier
	Navigator     Navigator
	Validator     *validation.Validator
	Translator    *i18n.Translator
	RedirectDelay time.Duration
	Logger        *zap.Logger
}

type Wizard struct {
	gateway       Gateway
	notifier      Notifier
	navigator     Navigator
	validator     *validation.Validator
	translator    *i18n.Translator
	redirectDelay time.Duration
	logger        *zap.Logger

	busy atomic.Bool

	mu           sync.RWMutex
	step         domain.Step
	form         domain.CheckoutForm
	errors       map[domain.Field]*validation.FieldError
	confirmation *domain.OrderConfirmation
	redirect     *time.Timer
}

// New returns a wizard on the account step with the default form values.
func New(gateway Gateway, opts Options) *Wizard {
	w := &Wizard{
		gateway:       gateway,
		notifier:      opts.Notifier,
		navigator:     opts.Navigator,
		validator:     opts.Validator,
		translator:    opts.Translator,
		redirectDelay: opts.RedirectDelay,
		logger:        opts.Logger,
		step:          domain.StepAccount,
		form:          domain.DefaultCheckoutForm(),
		errors:        make(map[domain.Field]*validation.FieldError),
	}
	if w.notifier == nil {
		w.notifier = nopNotifier{}
	}
	if w.navigator == nil {
		w.navigator = nopNavigator{}
	}
	if w.validator == nil {
		w.validator = validation.New()
	}
	if w.translator == nil {
		w.translator = i18n.New("en")
	}
	if w.redirectDelay <= 0 {
		w.redirectDelay = DefaultRedirectDelay
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	return w
}

func (w *Wizard) Busy() bool {
	return w.busy.Load()
}

func (w *Wizard) Step() domain.Step {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.step
}

// Form returns a copy of the current form values.
func (w *Wizard) Form() domain.CheckoutForm {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.form
}

// Errors returns the currently displayed field errors.
func (w *Wizard) Errors() map[domain.Field]*validation.FieldError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[domain.Field]*validation.FieldError, len(w.errors))
	for f, e := range w.errors {
		out[f] = e
	}
	return out
}

// Confirmation is set once the order has been completed.
func (w *Wizard) Confirmation() *domain.OrderConfirmation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.confirmation
}

// SetField stores value and validates the field right away. It returns
// domain.ErrUnknownField, the field's *validation.FieldError, or nil.
func (w *Wizard) SetField(field domain.Field, value string) error {
	fe := w.validator.Field(field, value)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.form.Set(field, value); err != nil {
		return err
	}
	if fe != nil {
		w.errors[field] = fe
		return fe
	}
	delete(w.errors, field)
	return nil
}

// FieldValid reports whether a field has a value and no recorded error.
func (w *Wizard) FieldValid(field domain.Field) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.form.Get(field) != "" && w.errors[field] == nil
}

// Advance submits the current step and moves to target on success.
//
// Only one Advance runs at a time; a concurrent call gets ErrBusy. A failing
// validation returns validation.Errors without any request. A failed request
// shows the generic error notice and returns an error wrapping ErrStepFailed;
// the wizard stays on its step either way.
func (w *Wizard) Advance(ctx context.Context, target domain.Step) error {
	if !w.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer w.busy.Store(false)

	w.mu.RLock()
	from, form := w.step, w.form
	w.mu.RUnlock()

	if from.IsTerminal() {
		return ErrFlowFinished
	}
	if !domain.CanTransitionTo(from, target) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, target)
	}

	if err := w.validator.Step(form, from); err != nil {
		w.showErrors(from, err)
		return err
	}
	w.showErrors(from, nil)

	confirmation, err := w.submit(ctx, from, form)
	if err != nil {
		w.logger.Warn("checkout step failed",
			zap.String("step", from.String()),
			zap.Error(err))
		w.notifier.Error(w.translator.T(i18n.GenericError))
		return fmt.Errorf("%w: %s: %w", ErrStepFailed, from, err)
	}

	w.mu.Lock()
	w.step = target
	if confirmation != nil {
		w.confirmation = confirmation
	}
	w.mu.Unlock()

	w.logger.Info("checkout step completed",
		zap.String("from", from.String()),
		zap.String("to", target.String()))

	if target.IsTerminal() {
		w.notifier.Success(w.translator.T(i18n.OrderPlaced))
		w.scheduleRedirect()
	}
	return nil
}

func (w *Wizard) submit(ctx context.Context, step domain.Step, form domain.CheckoutForm) (*domain.OrderConfirmation, error) {
	switch step {
	case domain.StepAccount:
		return nil, w.gateway.SubmitAccount(ctx, form.Account())
	case domain.StepShipping:
		return nil, w.gateway.SubmitShipping(ctx, form.Shipping())
	case domain.StepPayment:
		if err := w.gateway.SubmitPayment(ctx, form.Payment()); err != nil {
			return nil, err
		}
		return w.gateway.CompleteOrder(ctx, form)
	}
	return nil, fmt.Errorf("%w: no endpoint for step %s", ErrIllegalTransition, step)
}

// showErrors replaces the displayed errors of step's fields with err's.
func (w *Wizard) showErrors(step domain.Step, err error) {
	var verrs validation.Errors
	errors.As(err, &verrs)

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range step.Fields() {
		delete(w.errors, f)
	}
	for _, fe := range verrs {
		w.errors[fe.Field] = fe
	}
}

func (w *Wizard) scheduleRedirect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.redirect = time.AfterFunc(w.redirectDelay, func() {
		w.navigator.Navigate(HomePath)
	})
}

// Cancel asks for confirmation and, when given, leaves the flow immediately.
// Nothing is submitted.
func (w *Wizard) Cancel(confirmer Confirmer) bool {
	if confirmer == nil || !confirmer.Confirm(w.translator.T(i18n.ConfirmCancel)) {
		return false
	}
	w.Close()
	w.navigator.Navigate(HomePath)
	return true
}

// Close stops a pending post-completion redirect.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.redirect != nil {
		w.redirect.Stop()
		w.redirect = nil
	}
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
