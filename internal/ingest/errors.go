package ingest

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinels for the failure taxonomy; match them with errors.Is.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrProvisioning   = errors.New("dataset provisioning failed")
	ErrIngestion      = errors.New("ingestion failed")
	ErrVerification   = errors.New("verification failed")
)

// Error is a failure of one pipeline step. It wraps the underlying cause.
type Error struct {
	Step Step
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Step.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the failed step.
func (e *Error) Is(target error) bool {
	return target == e.Step.sentinel()
}

func stepError(step Step, err error) error {
	return &Error{Step: step, Err: err}
}

// FailedStep returns the step an error originated from.
func FailedStep(err error) (Step, bool) {
	var stepErr *Error
	if errors.As(err, &stepErr) {
		return stepErr.Step, true
	}

	return 0, false
}
