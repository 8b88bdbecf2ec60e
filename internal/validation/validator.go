package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fjod/go_checkout/internal/domain"
)

// FieldError describes a single failing field.
type FieldError struct {
	Field      domain.Field
	MessageKey string
	Message    string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors lists every failing field of a validated subset, in rule order.
type Errors []*FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// For returns the error recorded for field, if any.
func (e Errors) For(field domain.Field) *FieldError {
	for _, fe := range e {
		if fe.Field == field {
			return fe
		}
	}
	return nil
}

// Validator evaluates Rules against form values.
type Validator struct {
	validate *validator.Validate
	rules    map[domain.Field]Rule
}

func New() *Validator {
	v := validator.New()
	for tag, re := range patterns {
		re := re
		// RegisterValidation only fails on an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}

	rules := make(map[domain.Field]Rule, len(Rules))
	for _, r := range Rules {
		rules[r.Field] = r
	}
	return &Validator{validate: v, rules: rules}
}

// Field checks a single value against its rule. Fields without a rule always pass.
func (v *Validator) Field(field domain.Field, value string) *FieldError {
	rule, ok := v.rules[field]
	if !ok {
		return nil
	}
	if err := v.validate.Var(value, rule.Tag); err != nil {
		return &FieldError{Field: field, MessageKey: rule.MessageKey, Message: rule.Message}
	}
	return nil
}

// Step re-checks every field belonging to step and returns Errors when any fails.
func (v *Validator) Step(form domain.CheckoutForm, step domain.Step) error {
	return v.fields(form, step.Fields())
}

// Form checks every field of the form.
func (v *Validator) Form(form domain.CheckoutForm) error {
	return v.fields(form, domain.Fields)
}

func (v *Validator) fields(form domain.CheckoutForm, fields []domain.Field) error {
	var errs Errors
	for _, f := range fields {
		if fe := v.Field(f, form.Get(f)); fe != nil {
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
