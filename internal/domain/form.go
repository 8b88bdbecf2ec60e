package domain

// Field names a single input of the checkout form. The values double as the
// JSON keys used by the checkout API.
type Field string

const (
	FieldEmail          Field = "email"
	FieldPassword       Field = "password"
	FieldAddressLine1   Field = "addressLine1"
	FieldStreetName     Field = "streetName"
	FieldPostcode       Field = "postcode"
	FieldShippingMethod Field = "shippingMethod"
	FieldCardName       Field = "cardName"
	FieldCardNumber     Field = "cardNumber"
	FieldExpMonth       Field = "expMonth"
	FieldExpYear        Field = "expYear"
	FieldCVC            Field = "cvc"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldEmail, FieldPassword,
	FieldAddressLine1, FieldStreetName, FieldPostcode, FieldShippingMethod,
	FieldCardName, FieldCardNumber, FieldExpMonth, FieldExpYear, FieldCVC,
}

// Shipping methods offered on the shipping step.
const (
	ShippingFree    = "Free delivery"
	ShippingExpress = "Express (£5.00)"
)

var ShippingMethods = []string{ShippingFree, ShippingExpress}

// CheckoutForm is the single record the wizard reads and writes.
type CheckoutForm struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	AddressLine1   string `json:"addressLine1"`
	StreetName     string `json:"streetName"`
	Postcode       string `json:"postcode"`
	ShippingMethod string `json:"shippingMethod"`
	CardName       string `json:"cardName"`
	CardNumber     string `json:"cardNumber"`
	ExpMonth       string `json:"expMonth"`
	ExpYear        string `json:"expYear"`
	CVC            string `json:"cvc"`
}

// DefaultCheckoutForm returns the placeholder values shown when the wizard mounts.
func DefaultCheckoutForm() CheckoutForm {
	return CheckoutForm{
		Email:          "johndoe@tesemail.com",
		Password:       "********",
		AddressLine1:   "123",
		StreetName:     "Electric avenue",
		Postcode:       "ABC - 123",
		ShippingMethod: ShippingFree,
		CardName:       "John Smith",
		CardNumber:     "1234-4567",
		ExpMonth:       "03",
		ExpYear:        "24",
		CVC:            "123",
	}
}

func (f *CheckoutForm) field(name Field) *string {
	switch name {
	case FieldEmail:
		return &f.Email
	case FieldPassword:
		return &f.Password
	case FieldAddressLine1:
		return &f.AddressLine1
	case FieldStreetName:
		return &f.StreetName
	case FieldPostcode:
		return &f.Postcode
	case FieldShippingMethod:
		return &f.ShippingMethod
	case FieldCardName:
		return &f.CardName
	case FieldCardNumber:
		return &f.CardNumber
	case FieldExpMonth:
		return &f.ExpMonth
	case FieldExpYear:
		return &f.ExpYear
	case FieldCVC:
		return &f.CVC
	}
	return nil
}

// Get returns the value of a field, or "" for an unknown field.
func (f CheckoutForm) Get(name Field) string {
	if p := f.field(name); p != nil {
		return *p
	}
	return ""
}

// Set stores value in the named field. It returns ErrUnknownField for a name
// that is not part of the form.
func (f *CheckoutForm) Set(name Field, value string) error {
	p := f.field(name)
	if p == nil {
		return ErrUnknownField
	}
	*p = value
	return nil
}

// AccountDetails is the account step payload.
type AccountDetails struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ShippingDetails is the shipping step payload.
type ShippingDetails struct {
	AddressLine1   string `json:"addressLine1"`
	StreetName     string `json:"streetName"`
	Postcode       string `json:"postcode"`
	ShippingMethod string `json:"shippingMethod"`
}

// PaymentDetails is the payment step payload.
type PaymentDetails struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	ExpMonth   string `json:"expMonth"`
	ExpYear    string `json:"expYear"`
	CVC        string `json:"cvc"`
}

func (f CheckoutForm) Account() AccountDetails {
	return AccountDetails{Email: f.Email, Password: f.Password}
}

func (f CheckoutForm) Shipping() ShippingDetails {
	return ShippingDetails{
		AddressLine1:   f.AddressLine1,
		StreetName:     f.StreetName,
		Postcode:       f.Postcode,
		ShippingMethod: f.ShippingMethod,
	}
}

func (f CheckoutForm) Payment() PaymentDetails {
	return PaymentDetails{
		CardName:   f.CardName,
		CardNumber: f.CardNumber,
		ExpMonth:   f.ExpMonth,
		ExpYear:    f.ExpYear,
		CVC:        f.CVC,
	}
}

// OrderConfirmation is returned when an order is completed.
type OrderConfirmation struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}
