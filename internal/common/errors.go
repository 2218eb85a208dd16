// Package common defines shared constants and sentinel errors used across
// the store, service and transport layers. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Input errors.
	ErrValidation = errors.New("validation error")

	// Repository-level errors.
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrAuth is the parent of every authentication failure below.
	ErrAuth = errors.New("auth error")

	ErrMissingToken       = fmt.Errorf("%w: missing token", ErrAuth)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrAuth)
	ErrUnauthenticated    = fmt.Errorf("%w: unauthenticated", ErrAuth)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrAuth)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuth)

	// ErrInternal marks failures that are not the caller's fault.
	ErrInternal = errors.New("internal error")
)

// Error kinds reported to API callers.
const (
	KindValidation          = "ValidationError"
	KindNotFound            = "NotFound"
	KindConstraintViolation = "ConstraintViolation"
	KindMissingToken        = "AuthError.MissingToken"
	KindInvalidToken        = "AuthError.InvalidToken"
	KindUnauthenticated     = "AuthError.Unauthenticated"
	KindUserNotFound        = "AuthError.UserNotFound"
	KindInvalidCredentials  = "AuthError.InvalidCredentials"
	KindInternal            = "Internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrConstraintViolation, KindConstraintViolation},
	{ErrMissingToken, KindMissingToken},
	{ErrInvalidToken, KindInvalidToken},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrUserNotFound, KindUserNotFound},
	{ErrInvalidCredentials, KindInvalidCredentials},
}

// Kind returns the taxonomy name of err. Anything outside the taxonomy is
// reported as KindInternal.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Validationf builds an ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
