package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateToken generates a random, URL-safe token used for email
// verification and password reset links.
// Format: 32 characters, lowercase alphanumeric
func GenerateToken() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 32

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		result[i] = chars[num.Int64()]
	}

	return string(result)
}
