package route53

import "errors"

var (
	// ErrChangeRejected is returned when Route 53 refuses the change,
	// for example for a validation, authorization or throttling error.
	ErrChangeRejected = errors.New("change rejected")
	// ErrBadHTTPStatus is returned for unexpected HTTP statuses
	// with a body which is not a Route 53 error.
	ErrBadHTTPStatus = errors.New("bad HTTP status")
	// ErrPropagationTimeout is returned when the change is still
	// pending after the wait timeout.
	ErrPropagationTimeout = errors.New("change propagation timed out")
	// ErrPropagationFailed is returned when the change status cannot
	// be obtained or is not a known status.
	ErrPropagationFailed = errors.New("change propagation failed")
	ErrZoneIDEmpty       = errors.New("hosted zone id is empty")
	ErrChangeIDEmpty     = errors.New("change id is empty")
)
