package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GenerateRandomPassword generates an initial password for users created by
// an administrator. The password is returned once and only its hash is stored.
func GenerateRandomPassword(length int) (string, error) {
	password := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))

	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = passwordChars[n.Int64()]
	}

	return string(password), nil
}
