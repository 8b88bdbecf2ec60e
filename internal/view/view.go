// Package view renders the checkout screens as plain text.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/i18n"
	"github.com/fjod/go_checkout/internal/validation"
)

const (
	tick    = "✓"
	current = "●"
	pending = "○"
	brand   = "dummy."
)

var stepLabels = map[domain.Step]string{
	domain.StepAccount:  i18n.StepAccount,
	domain.StepShipping: i18n.StepShipping,
	domain.StepPayment:  i18n.StepPayment,
}

var stepTitles = map[domain.Step]string{
	domain.StepAccount:  i18n.AccountDetails,
	domain.StepShipping: i18n.ShippingDetails,
	domain.StepPayment:  i18n.PaymentDetails,
}

var fieldLabels = map[domain.Field]string{
	domain.FieldEmail:          i18n.EmailAddress,
	domain.FieldPassword:       i18n.Password,
	domain.FieldAddressLine1:   i18n.FirstLine,
	domain.FieldStreetName:     i18n.StreetName,
	domain.FieldPostcode:       i18n.Postcode,
	domain.FieldShippingMethod: i18n.SelectShipping,
	domain.FieldCardName:       i18n.NameOnCard,
	domain.FieldCardNumber:     i18n.CardNumber,
	domain.FieldExpMonth:       i18n.ExpMonth,
	domain.FieldExpYear:        i18n.ExpYear,
	domain.FieldCVC:            i18n.CVC,
}

// FieldLabel returns the translated label of a form field.
func FieldLabel(t *i18n.Translator, field domain.Field) string {
	if key, ok := fieldLabels[field]; ok {
		return t.T(key)
	}
	return string(field)
}

// StepTitle returns the heading shown above a step's fields.
func StepTitle(t *i18n.Translator, step domain.Step) string {
	if key, ok := stepTitles[step]; ok {
		return t.T(key)
	}
	return step.String()
}

// StepIndicator writes the three visible steps. Steps before the current one
// are ticked; once the flow is complete every step is.
func StepIndicator(w io.Writer, t *i18n.Translator, step domain.Step) {
	at := step.Index()
	parts := make([]string, 0, len(domain.Steps))
	for i, s := range domain.Steps {
		mark := pending
		switch {
		case i < at:
			mark = tick
		case i == at:
			mark = current
		}
		parts = append(parts, mark+" "+t.T(stepLabels[s]))
	}
	fmt.Fprintln(w, strings.Join(parts, "  >  "))
}

// Field writes one labelled input line: a tick when the value is valid, the
// translated message when it is not.
func Field(w io.Writer, t *i18n.Translator, field domain.Field, value string, fe *validation.FieldError) {
	line := fmt.Sprintf("  %s: %s", FieldLabel(t, field), displayValue(t, field, value))
	switch {
	case fe != nil:
		line += "  ! " + t.T(fe.MessageKey)
	case value != "":
		line += "  " + tick
	}
	fmt.Fprintln(w, line)
}

var shippingLabels = map[string]string{
	domain.ShippingFree:    i18n.FreeDelivery,
	domain.ShippingExpress: i18n.ExpressDelivery,
}

func displayValue(t *i18n.Translator, field domain.Field, value string) string {
	switch field {
	case domain.FieldPassword:
		return strings.Repeat("*", len([]rune(value)))
	case domain.FieldShippingMethod:
		if key, ok := shippingLabels[value]; ok {
			return t.T(key)
		}
	}
	return value
}

// ShippingOptions writes the selectable shipping methods, numbered from 1.
func ShippingOptions(w io.Writer, t *i18n.Translator) {
	for i, m := range domain.ShippingMethods {
		fmt.Fprintf(w, "    %d) %s\n", i+1, t.T(shippingLabels[m]))
	}
}

// Navbar writes the brand and the cart badge.
func Navbar(w io.Writer, t *i18n.Translator, summary *domain.OrderSummary) {
	fmt.Fprintf(w, "%s    [%s]\n", brand, t.Items(summary.ItemCount()))
}

// CartPopover writes the cart contents shown when the badge is opened.
// Nothing is written without a summary.
func CartPopover(w io.Writer, t *i18n.Translator, summary *domain.OrderSummary) {
	if summary == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t\t\n", t.T(i18n.OrderSummary))
	for _, item := range summary.Items {
		fmt.Fprintf(tw, "%s\t%d x %s\t%s\t\n",
			item.Name, item.Quantity,
			t.Money(item.Price, summary.Currency),
			t.Money(item.LineTotal(), summary.Currency))
	}
	fmt.Fprintf(tw, "%s\t\t%s\t\n", t.T(i18n.Total), t.Money(summary.Total, summary.Currency))
	tw.Flush()
}

// OrderSummary writes the summary panel: a placeholder while loading,
// nothing when there is no summary.
func OrderSummary(w io.Writer, t *i18n.Translator, summary *domain.OrderSummary, loading bool) {
	if loading {
		fmt.Fprintln(w, t.T(i18n.Loading))
		return
	}
	if summary == nil {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", t.T(i18n.OrderSummary))
	for _, item := range summary.Items {
		fmt.Fprintf(tw, "  [%s] %s\t%s\t- %d +\n",
			item.ID, item.Name, t.Money(item.Price, summary.Currency), item.Quantity)
	}

	shipping := t.T(i18n.FreeDelivery)
	if !summary.Shipping.IsZero() {
		shipping = t.Money(summary.Shipping, summary.Currency)
	}
	fmt.Fprintf(tw, "  %s\t%s\t\n", t.T(i18n.Subtotal), t.Money(summary.Subtotal, summary.Currency))
	fmt.Fprintf(tw, "  %s\t%s\t\n", t.T(i18n.Tax), t.Money(summary.Tax, summary.Currency))
	fmt.Fprintf(tw, "  %s\t%s\t\n", t.T(i18n.Shipping), shipping)
	fmt.Fprintf(tw, "  %s\t%s\t\n", t.T(i18n.Total), t.Money(summary.Total, summary.Currency))
	tw.Flush()
}
