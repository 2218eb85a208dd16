package auth

import (
	"errors"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt hash of password. The salt is drawn
// per call, so equal inputs hash differently.
func HashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.Validationf("password must be at most 72 bytes")
		}
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash. A malformed hash is
// a mismatch, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
