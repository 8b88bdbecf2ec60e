package wizard

import "errors"

var (
	ErrBusy              = errors.New("a step submission is already in flight")
	ErrIllegalTransition = errors.New("illegal step transition")
	ErrFlowFinished      = errors.New("checkout flow already finished")
	ErrStepFailed        = errors.New("step submission failed")
)
