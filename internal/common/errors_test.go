package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", Validationf("skip must be >= %d", 0), KindValidation},
		{"wrapped not found", fmt.Errorf("find link: %w", ErrNotFound), KindNotFound},
		{"constraint", ErrConstraintViolation, KindConstraintViolation},
		{"missing token", ErrMissingToken, KindMissingToken},
		{"invalid token", fmt.Errorf("%w: bad signature", ErrInvalidToken), KindInvalidToken},
		{"unauthenticated", ErrUnauthenticated, KindUnauthenticated},
		{"user not found", ErrUserNotFound, KindUserNotFound},
		{"invalid credentials", ErrInvalidCredentials, KindInvalidCredentials},
		{"unknown", errors.New("boom"), KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestAuthErrorsShareParent(t *testing.T) {
	for _, err := range []error{ErrMissingToken, ErrInvalidToken, ErrUnauthenticated, ErrUserNotFound, ErrInvalidCredentials} {
		assert.ErrorIs(t, err, ErrAuth)
	}
	assert.NotErrorIs(t, ErrInvalidToken, ErrUnauthenticated)
}

func TestValidationf_Message(t *testing.T) {
	err := Validationf("take must be <= %d", 100)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: take must be <= 100", err.Error())
}
