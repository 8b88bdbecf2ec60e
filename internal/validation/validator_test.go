package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_checkout/internal/domain"
)

func TestValidator_Field(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		field domain.Field
		value string
		ok    bool
	}{
		{"email valid", domain.FieldEmail, "a@b.com", true},
		{"email default", domain.FieldEmail, "johndoe@tesemail.com", true},
		{"email malformed", domain.FieldEmail, "not-an-email", false},
		{"email empty", domain.FieldEmail, "", false},
		{"password eight chars", domain.FieldPassword, "12345678", true},
		{"password short", domain.FieldPassword, "1234567", false},
		{"address present", domain.FieldAddressLine1, "123", true},
		{"address empty", domain.FieldAddressLine1, "", false},
		{"street empty", domain.FieldStreetName, "", false},
		{"postcode three chars", domain.FieldPostcode, "E1A", true},
		{"postcode short", domain.FieldPostcode, "E1", false},
		{"shipping method empty", domain.FieldShippingMethod, "", false},
		{"card name empty", domain.FieldCardName, "", false},
		{"card number plain", domain.FieldCardNumber, "1234-5678", true},
		{"card number trailing hyphen", domain.FieldCardNumber, "1234-5678-", true},
		{"card number too short", domain.FieldCardNumber, "1234-567", false},
		{"card number letters", domain.FieldCardNumber, "abcd-5678", false},
		{"card number three groups", domain.FieldCardNumber, "1234-5678-9012", false},
		{"month 01", domain.FieldExpMonth, "01", true},
		{"month 12", domain.FieldExpMonth, "12", true},
		{"month 00", domain.FieldExpMonth, "00", false},
		{"month 13", domain.FieldExpMonth, "13", false},
		{"month single digit", domain.FieldExpMonth, "3", false},
		{"year two digits", domain.FieldExpYear, "24", true},
		{"year four digits", domain.FieldExpYear, "2024", false},
		{"cvc three", domain.FieldCVC, "123", true},
		{"cvc four", domain.FieldCVC, "1234", true},
		{"cvc five", domain.FieldCVC, "12345", false},
		{"cvc letters", domain.FieldCVC, "12a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := v.Field(tt.field, tt.value)
			if tt.ok {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.NotEmpty(t, fe.Message)
			assert.NotEmpty(t, fe.MessageKey)
		})
	}
}

func TestValidator_StepChecksOnlyItsSubset(t *testing.T) {
	v := New()
	form := domain.DefaultCheckoutForm()
	form.CardNumber = "bad"

	assert.NoError(t, v.Step(form, domain.StepAccount))
	assert.NoError(t, v.Step(form, domain.StepShipping))

	err := v.Step(form, domain.StepPayment)
	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, domain.FieldCardNumber, errs[0].Field)
	assert.Equal(t, KeyErrorCardNumber, errs[0].MessageKey)
}

func TestValidator_StepReportsEveryFailure(t *testing.T) {
	v := New()
	form := domain.DefaultCheckoutForm()
	form.Email = "not-an-email"
	form.Password = "short"

	err := v.Step(form, domain.StepAccount)
	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 2)
	assert.NotNil(t, errs.For(domain.FieldEmail))
	assert.NotNil(t, errs.For(domain.FieldPassword))
	assert.Nil(t, errs.For(domain.FieldCVC))
	assert.Contains(t, err.Error(), "email")
}

func TestValidator_DefaultFormIsValid(t *testing.T) {
	assert.NoError(t, New().Form(domain.DefaultCheckoutForm()))
}

func TestRules_CoverEveryField(t *testing.T) {
	covered := map[domain.Field]bool{}
	for _, r := range Rules {
		covered[r.Field] = true
	}
	for _, f := range domain.Fields {
		assert.True(t, covered[f], "no rule for %s", f)
	}
}
