package utils

import (
	"math/rand"
	"time"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var keyRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateRandomString returns an alphanumeric string of the given length,
// used to keep storage keys unique per upload.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = keyAlphabet[keyRand.Intn(len(keyAlphabet))]
	}
	return string(b)
}
