package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost for stored passwords
const BcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

const tempPasswordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TempPasswordLength is the length of generated temporary passwords for
// bulk-created accounts.
const TempPasswordLength = 12

// GenerateTempPassword creates a random temporary password for a
// bulk-created account. The alphabet omits easily confused characters
// (0/O, 1/l/I) since the password is delivered by email and typed by hand.
func GenerateTempPassword() (string, error) {
	result := make([]byte, TempPasswordLength)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate temporary password: %w", err)
		}
		result[i] = tempPasswordChars[n.Int64()]
	}
	return string(result), nil
}
