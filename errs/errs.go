package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAuthRequired    = errors.New("auth required")
)

type InvalidArgumentError struct{ err error }

func (e *InvalidArgumentError) Error() string        { return e.err.Error() }
func (e *InvalidArgumentError) Unwrap() error        { return e.err }
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func InvalidArgumentf(format string, args ...any) error {
	return &InvalidArgumentError{err: fmt.Errorf(format, args...)}
}

type AuthRequiredError struct{ err error }

func (e *AuthRequiredError) Error() string        { return e.err.Error() }
func (e *AuthRequiredError) Unwrap() error        { return e.err }
func (e *AuthRequiredError) Is(target error) bool { return target == ErrAuthRequired }

func AuthRequired(err error) error {
	if err == nil {
		return nil
	}
	return &AuthRequiredError{err: err}
}
