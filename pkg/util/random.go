package util

import (
	"crypto/rand"
	"math/big"
)

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString generates a random string of the given length
func GetRandomString(length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(randomChars)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			result[i] = randomChars[0]
			continue
		}
		result[i] = randomChars[n.Int64()]
	}
	return string(result)
}
