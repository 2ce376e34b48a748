package services

import (
	"errors"
	"fmt"

	"storefront/internal/repositories"
)

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict means the write would break a uniqueness rule.
	ErrConflict = repositories.ErrConflict
	// ErrValidation means the caller supplied unusable input.
	ErrValidation = errors.New("validation failed")
	// ErrInternal wraps unexpected store or dependency failures.
	ErrInternal = errors.New("internal failure")
)

// storeError passes classified store errors through and marks everything else internal.
func storeError(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
