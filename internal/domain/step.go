package domain

// Step is one screen of the checkout wizard.
type Step string

const (
	StepAccount  Step = "account"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepComplete Step = "complete"
)

// Steps lists the visible wizard steps in flow order.
var Steps = []Step{StepAccount, StepShipping, StepPayment}

var transitions = map[Step]Step{
	StepAccount:  StepShipping,
	StepShipping: StepPayment,
	StepPayment:  StepComplete,
}

var stepFields = map[Step][]Field{
	StepAccount:  {FieldEmail, FieldPassword},
	StepShipping: {FieldAddressLine1, FieldStreetName, FieldPostcode, FieldShippingMethod},
	StepPayment:  {FieldCardName, FieldCardNumber, FieldExpMonth, FieldExpYear, FieldCVC},
}

// CanTransitionTo reports whether the flow may move from one step to another.
// The flow is forward-only: there is no way back to an earlier step.
func CanTransitionTo(from, to Step) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// Next returns the step that follows s, or "" for the terminal step.
func (s Step) Next() Step {
	return transitions[s]
}

func (s Step) IsTerminal() bool {
	return s == StepComplete
}

// Fields returns the form fields validated and submitted on this step.
func (s Step) Fields() []Field {
	return stepFields[s]
}

// Index is the zero-based position of s in Steps, or len(Steps) once complete.
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	if s == StepComplete {
		return len(Steps)
	}
	return -1
}

func (s Step) Valid() bool {
	return s.Index() >= 0
}

func (s Step) String() string {
	return string(s)
}
