// Package errors contains the error helpers used throughout bolt-sync.
// Errors are annotated with WithContext as they travel up the stack, and
// errors that should be shown to users as-is implement FriendlyMessage.
package errors

import (
	goErrors "errors"
	"fmt"
)

// New returns an error with the given message. If args are provided, the
// message is treated as a format string.
func New(format string, args ...interface{}) error {
	if len(args) == 0 {
		return baseError{format}
	}
	return baseError{fmt.Sprintf(format, args...)}
}

type baseError struct {
	msg string
}

func (err baseError) Error() string {
	return err.msg
}

// WithContext annotates err with a description of what was being done when
// it occurred. The resulting message is "context: err".
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return contextError{context: context, err: err}
}

type contextError struct {
	context string
	err     error
}

func (err contextError) Error() string {
	return fmt.Sprintf("%s: %s", err.context, err.err)
}

func (err contextError) Unwrap() error {
	return err.err
}

// RootCause strips all the context added by WithContext.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(contextError)
		if !ok {
			return err
		}
		err = ctxErr.err
	}
}

// FriendlyError is an error whose message is written for end users rather
// than developers.
type FriendlyError struct {
	msg string
}

// NewFriendlyError creates a FriendlyError from a format string.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{fmt.Sprintf(format, args...)}
}

func (err FriendlyError) Error() string {
	return err.msg
}

// FriendlyMessage returns the user facing message.
func (err FriendlyError) FriendlyMessage() string {
	return err.msg
}

type friendly interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be shown to the user
// for err. If any error in the chain has a friendly message, it's used.
// Otherwise, the full error string is returned.
func GetPrintableMessage(err error) string {
	for curr := err; curr != nil; curr = goErrors.Unwrap(curr) {
		if f, ok := curr.(friendly); ok {
			return f.FriendlyMessage()
		}
	}
	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return goErrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return goErrors.As(err, target)
}
