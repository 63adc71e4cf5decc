package service

import (
	"errors"
	"fmt"
)

// Error kinds the engine reports. Handlers branch on these with
// errors.Is; the wrapped message is what the UI shows as a toast.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConsistency = errors.New("consistency error")
	ErrStorage     = errors.New("storage error")
)

// Validationf builds a caller-facing validation error.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf reports a missing entity.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Consistencyf reports a derived invariant that would be violated.
func Consistencyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}

// storagef wraps a persistence failure, keeping the provider message.
func storagef(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConsistency) || errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
