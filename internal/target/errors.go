package target

import (
	"errors"
	"fmt"
)

// Sentinel errors for each rejection kind. A *ValidationError matches the
// sentinel of its kind with errors.Is.
var (
	ErrOversLostExceedsMaximum    = errors.New("raintarget: overs lost exceeds maximum")
	ErrInsufficientOversRemaining = errors.New("raintarget: insufficient overs remaining")
	ErrInputOutOfRange            = errors.New("raintarget: input out of range")
)

// Kind identifies why an input was rejected.
type Kind string

const (
	KindOversLostExceedsMaximum    Kind = "overs_lost_exceeds_maximum"
	KindInsufficientOversRemaining Kind = "insufficient_overs_remaining"
	KindInputOutOfRange            Kind = "input_out_of_range"
)

func (k Kind) sentinel() error {
	switch k {
	case KindOversLostExceedsMaximum:
		return ErrOversLostExceedsMaximum
	case KindInsufficientOversRemaining:
		return ErrInsufficientOversRemaining
	case KindInputOutOfRange:
		return ErrInputOutOfRange
	}
	return nil
}

// ValidationError is a user input rejection. It never carries a partial result.
type ValidationError struct {
	Kind   Kind
	Reason string
	Input  Input
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is reports whether target is the sentinel for e's kind.
func (e *ValidationError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func reject(in Input, kind Kind, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
		Input:  in,
	}
}
