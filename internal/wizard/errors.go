package wizard

import "errors"

var (
	ErrInvalidStep         = errors.New("step must be between 1 and 3")
	ErrStepNotValid        = errors.New("current step has invalid or missing fields")
	ErrAddressNotConfirmed = errors.New("a successful postal-code lookup is required before continuing")
)

// FieldError reports which field failed validation so the caller can surface
// it inline.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}
