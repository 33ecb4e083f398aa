package usecase

import (
	"errors"
	"fmt"
)

// Sentinels the HTTP layer maps onto status codes.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// invalidInput keeps cause in the chain next to ErrInvalidInput, so a caller can still
// match excitement.ErrInvalidWeights and friends.
func invalidInput(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, cause)
}

func invalidInputf(format string, args ...any) error {
	return invalidInput(fmt.Errorf(format, args...))
}

// unavailable marks a failed call to storage or the live provider.
func unavailable(cause error, op string) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrDependencyUnavailable, op)
	}
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, cause)
}
