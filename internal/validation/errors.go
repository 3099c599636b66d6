package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Error describes input the core refuses to accept.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func New(msg string) error {
	return &Error{Msg: msg}
}

func Newf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, a validation error (single or aggregated).
func Is(err error) bool {
	var single *Error
	if errors.As(err, &single) {
		return true
	}
	var multiple *Errors
	return errors.As(err, &multiple)
}

// Errors collects several validation problems found in one batch.
type Errors struct {
	Errors []error
}

func (ve *Errors) Error() string {
	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

func (ve *Errors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

// ErrOrNil returns nil when nothing was collected, so callers can return it directly.
func (ve *Errors) ErrOrNil() error {
	if ve == nil || len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

// Unwrap exposes the collected errors to errors.Is / errors.As.
func (ve *Errors) Unwrap() []error {
	return ve.Errors
}
