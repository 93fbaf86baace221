package security

import (
	"telco_dash/internal/platform/config"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a bcrypt digest of the plaintext. The digest
// embeds its own salt and cost, so verification needs no extra state.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the digest.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
