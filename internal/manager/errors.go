package manager

import (
	"errors"
	"fmt"
)

// LoadError is the typed result of one failed backend construction.
type LoadError struct {
	Model string
	Err   error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Model, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// loadFailureError signals that the primary and the fallback model both
// failed to load.
type loadFailureError struct {
	primary  *LoadError
	fallback *LoadError
}

func (e loadFailureError) Error() string {
	if e.fallback == nil {
		return "model load failed: " + e.primary.Error()
	}
	return "model load failed: " + e.primary.Error() + "; fallback: " + e.fallback.Error()
}

func (e loadFailureError) Unwrap() []error {
	errs := []error{e.primary}
	if e.fallback != nil {
		errs = append(errs, e.fallback)
	}
	return errs
}

// IsLoadFailure reports whether err means no backend could be constructed.
func IsLoadFailure(err error) bool {
	var e loadFailureError
	return errors.As(err, &e)
}

// notSupportedError is returned for variants that cannot be served yet.
type notSupportedError struct{ variant Variant }

func (e notSupportedError) Error() string {
	if e.variant == VariantFineTuned {
		return "Fine-tuned model loading not implemented yet"
	}
	return "model type not supported: " + string(e.variant)
}

// IsNotSupported reports whether err indicates an unimplemented variant.
func IsNotSupported(err error) bool {
	var e notSupportedError
	return errors.As(err, &e)
}

// inferenceError wraps a failure raised by a loaded backend.
type inferenceError struct {
	model string
	err   error
}

func (e inferenceError) Error() string { return "inference on " + e.model + ": " + e.err.Error() }

func (e inferenceError) Unwrap() error { return e.err }

// IsInferenceFailure reports whether err came from a backend call.
func IsInferenceFailure(err error) bool {
	var e inferenceError
	return errors.As(err, &e)
}

// invalidInputError signals a caller mistake (empty labels, unknown variant).
type invalidInputError struct{ msg string }

func (e invalidInputError) Error() string { return e.msg }

// IsInvalidInput reports whether err was caused by invalid caller input.
func IsInvalidInput(err error) bool {
	var e invalidInputError
	return errors.As(err, &e)
}

// tooBusyError signals that admission to the backend timed out.
type tooBusyError struct{ model string }

func (e tooBusyError) Error() string { return "too busy: " + e.model }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}
