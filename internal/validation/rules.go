// Package validation holds the checkout form rule table and evaluates it
// field by field or one wizard step at a time.
package validation

import (
	"regexp"

	"github.com/fjod/go_checkout/internal/domain"
)

// Message keys looked up in the i18n catalog.
const (
	KeyErrorEmail      = "errorEmail"
	KeyErrorPassword   = "errorPassword"
	KeyErrorRequired   = "errorRequired"
	KeyErrorCardNumber = "errorCardNumber"
	KeyErrorExpMonth   = "errorExpMonth"
	KeyErrorExpYear    = "errorExpYear"
	KeyErrorCVC        = "errorCVC"
)

// Rule binds a field to a validator tag and the message shown when it fails.
type Rule struct {
	Field      domain.Field
	Tag        string
	MessageKey string
	Message    string
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{4}-\d{4}-?$`)
	expMonthPattern   = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	expYearPattern    = regexp.MustCompile(`^\d{2}$`)
	cvcPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// patterns are registered as custom validator tags.
var patterns = map[string]*regexp.Regexp{
	"card_number": cardNumberPattern,
	"exp_month":   expMonthPattern,
	"exp_year":    expYearPattern,
	"cvc":         cvcPattern,
}

// Rules is the checkout form rule table.
var Rules = []Rule{
	{domain.FieldEmail, "required,email", KeyErrorEmail, "Please enter a valid email address"},
	{domain.FieldPassword, "min=8", KeyErrorPassword, "Password must be at least 8 characters"},

	{domain.FieldAddressLine1, "required", KeyErrorRequired, "Address is required"},
	{domain.FieldStreetName, "required", KeyErrorRequired, "Street name is required"},
	{domain.FieldPostcode, "min=3", KeyErrorRequired, "Postcode is required"},
	{domain.FieldShippingMethod, "required", KeyErrorRequired, "Shipping method is required"},

	{domain.FieldCardName, "required", KeyErrorRequired, "Name on card is required"},
	{domain.FieldCardNumber, "card_number", KeyErrorCardNumber, "Invalid card format (1234-5678)"},
	{domain.FieldExpMonth, "exp_month", KeyErrorExpMonth, "MM"},
	{domain.FieldExpYear, "exp_year", KeyErrorExpYear, "YY"},
	{domain.FieldCVC, "cvc", KeyErrorCVC, "Invalid CVC"},
}
