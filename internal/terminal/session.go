// Package terminal runs the checkout flow as an interactive text session.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/cart"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/i18n"
	"github.com/fjod/go_checkout/internal/validation"
	"github.com/fjod/go_checkout/internal/view"
	"github.com/fjod/go_checkout/internal/wizard"
)

const actionHelp = "[next] cancel | edit | + <item> | - <item>"

// Session reads answers from in and writes screens to out. It is the
// wizard's Notifier, Navigator and Confirmer.
type Session struct {
	in     *bufio.Scanner
	t      *i18n.Translator
	logger *zap.Logger

	mu  sync.Mutex
	out io.Writer

	leaveOnce sync.Once
	left      chan struct{}
}

func NewSession(in io.Reader, out io.Writer, t *i18n.Translator, logger *zap.Logger) *Session {
	if t == nil {
		t = i18n.New("en")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		t:      t,
		logger: logger,
		left:   make(chan struct{}),
	}
}

func (s *Session) Success(msg string) {
	s.printf("✓ %s\n", msg)
}

func (s *Session) Error(msg string) {
	s.printf("✗ %s\n", msg)
}

// Navigate ends the session; the checkout page is left for path.
func (s *Session) Navigate(path string) {
	s.leaveOnce.Do(func() {
		s.printf("-> %s\n", path)
		close(s.left)
	})
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (s *Session) Confirm(prompt string) bool {
	s.printf("%s [y/N] ", prompt)
	line, ok := s.readLine()
	if !ok {
		return false
	}
	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes"
}

func (s *Session) hasLeft() bool {
	select {
	case <-s.left:
		return true
	default:
		return false
	}
}

// Run drives wiz and store until the flow navigates away, the input ends or
// ctx is cancelled.
func (s *Session) Run(ctx context.Context, wiz *wizard.Wizard, store *cart.Store) error {
	defer wiz.Close()

	s.render(wiz, store)
	if err := store.Load(ctx); err != nil {
		s.logger.Warn("order summary unavailable", zap.Error(err))
		s.Error(s.t.T(i18n.GenericError))
	}

	for !s.hasLeft() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.render(wiz, store)
		if wiz.Step().IsTerminal() {
			if c := wiz.Confirmation(); c != nil {
				s.printf("%s\n", c.OrderID)
			}
			select {
			case <-s.left:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		}

		if !s.promptFields(wiz) {
			return nil
		}
		if done, err := s.actions(ctx, wiz, store); done || err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) render(wiz *wizard.Wizard, store *cart.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.out)
	view.Navbar(s.out, s.t, store.Summary())
	view.StepIndicator(s.out, s.t, wiz.Step())
	view.OrderSummary(s.out, s.t, store.Summary(), store.Loading())
}

// promptFields asks for every field of the current step. A blank answer
// keeps the current value. It reports false at end of input.
func (s *Session) promptFields(wiz *wizard.Wizard) bool {
	step := wiz.Step()
	s.printf("%s\n", view.StepTitle(s.t, step))

	for _, field := range step.Fields() {
		if field == domain.FieldShippingMethod {
			s.mu.Lock()
			view.ShippingOptions(s.out, s.t)
			s.mu.Unlock()
		}

		current := wiz.Form().Get(field)
		if field == domain.FieldPassword {
			current = strings.Repeat("*", len([]rune(current)))
		}
		s.printf("%s [%s]: ", view.FieldLabel(s.t, field), current)

		line, ok := s.readLine()
		if !ok {
			return false
		}
		if line == "" {
			continue
		}
		if field == domain.FieldShippingMethod {
			line = shippingMethod(line)
		}

		var fe *validation.FieldError
		if err := wiz.SetField(field, line); errors.As(err, &fe) {
			s.printf("  ! %s\n", s.t.T(fe.MessageKey))
		}
	}

	form := wiz.Form()
	errs := wiz.Errors()
	s.mu.Lock()
	for _, field := range step.Fields() {
		view.Field(s.out, s.t, field, form.Get(field), errs[field])
	}
	s.mu.Unlock()
	return true
}

// shippingMethod maps a menu number to its method; other input is kept.
func shippingMethod(answer string) string {
	for i, m := range domain.ShippingMethods {
		if answer == fmt.Sprint(i+1) {
			return m
		}
	}
	return answer
}

// actions reads commands until the step should be shown again. done is
// true when the session is over.
func (s *Session) actions(ctx context.Context, wiz *wizard.Wizard, store *cart.Store) (done bool, err error) {
	for {
		s.printf("%s > ", actionHelp)
		line, ok := s.readLine()
		if !ok {
			return true, nil
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "", "next":
			err := wiz.Advance(ctx, wiz.Step().Next())
			var verrs validation.Errors
			switch {
			case errors.As(err, &verrs):
				for _, fe := range verrs {
					s.printf("  ! %s: %s\n", view.FieldLabel(s.t, fe.Field), s.t.T(fe.MessageKey))
				}
			case err != nil && !errors.Is(err, wizard.ErrStepFailed):
				s.logger.Debug("advance rejected", zap.Error(err))
			}
			return false, nil

		case "cancel":
			if wiz.Cancel(s) {
				return true, nil
			}

		case "edit":
			return false, nil

		case "+", "-":
			delta := 1
			if cmd == "-" {
				delta = -1
			}
			if err := store.UpdateQuantity(arg, delta); err != nil {
				s.printf("  ! %v\n", err)
				continue
			}
			s.mu.Lock()
			view.CartPopover(s.out, s.t, store.Summary())
			s.mu.Unlock()

		default:
			s.printf("  ? %s\n", line)
		}
	}
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
