package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoContact          = &ValidationError{Message: "Please save your Email or Phone in Settings ⚙️"}
	ErrEmptyMessage       = &ValidationError{Message: "message is empty"}
	ErrSubjectStepClosed  = &ValidationError{Message: "select a date and a time first"}
	ErrEditItemNotVisible = errors.New("appointment is not in the current list")
)

// ValidationError is handled locally, no server call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError covers unreachable server, non-2xx answers and malformed bodies.
// Hint is the user-visible text naming the likely cause.
type TransportError struct {
	Op   string
	Hint string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) UserMessage() string {
	if e.Hint != "" {
		return e.Hint
	}
	return "Error connecting to server."
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerRejection is a mutation answered with status other than "success".
type ServerRejection struct {
	Op      string
	Message string
}

func (e *ServerRejection) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsRejection(err error) bool {
	var target *ServerRejection
	return errors.As(err, &target)
}
