package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Step
		want     bool
	}{
		{StepAccount, StepShipping, true},
		{StepShipping, StepPayment, true},
		{StepPayment, StepComplete, true},
		{StepAccount, StepPayment, false},
		{StepShipping, StepAccount, false},
		{StepPayment, StepShipping, false},
		{StepComplete, StepAccount, false},
		{StepAccount, StepAccount, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestStepFields(t *testing.T) {
	assert.Equal(t, []Field{FieldEmail, FieldPassword}, StepAccount.Fields())
	assert.Equal(t, []Field{FieldAddressLine1, FieldStreetName, FieldPostcode, FieldShippingMethod}, StepShipping.Fields())
	assert.Equal(t, []Field{FieldCardName, FieldCardNumber, FieldExpMonth, FieldExpYear, FieldCVC}, StepPayment.Fields())
	assert.Empty(t, StepComplete.Fields())
}

func TestStepIndex(t *testing.T) {
	assert.Equal(t, 0, StepAccount.Index())
	assert.Equal(t, 2, StepPayment.Index())
	assert.Equal(t, 3, StepComplete.Index())
	assert.False(t, Step("bogus").Valid())
	assert.True(t, StepComplete.IsTerminal())
}

func TestCheckoutForm_GetSet(t *testing.T) {
	form := DefaultCheckoutForm()
	for _, f := range Fields {
		require.NoError(t, form.Set(f, "x-"+string(f)))
		assert.Equal(t, "x-"+string(f), form.Get(f))
	}

	assert.ErrorIs(t, form.Set("nickname", "x"), ErrUnknownField)
	assert.Empty(t, form.Get("nickname"))
}

func TestCheckoutForm_StepPayloads(t *testing.T) {
	form := DefaultCheckoutForm()

	assert.Equal(t, AccountDetails{Email: "johndoe@tesemail.com", Password: "********"}, form.Account())
	assert.Equal(t, "Electric avenue", form.Shipping().StreetName)
	assert.Equal(t, "1234-4567", form.Payment().CardNumber)
}
