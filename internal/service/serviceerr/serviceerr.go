// Package serviceerr holds the error kinds surfaced by the service layer.
package serviceerr

import (
	"errors"
	"fmt"
)

var (
	// ErrCoffeeTypeNotFound is returned when an order references an unknown coffee type.
	ErrCoffeeTypeNotFound = errors.New("no such coffee type")
	// ErrConfigurationMissing is returned when a pricing setting has neither a stored value nor a default.
	ErrConfigurationMissing = errors.New("no default or stored configuration")
)

// Error is the single domain-level failure returned by services.
// Message describes the attempted operation, Err keeps the cause for errors.Is/As.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err into a service Error with a formatted message.
func New(err error, format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
