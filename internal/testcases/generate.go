package testcases

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// randomAlphabet is the character set for RandomString.
const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Timestamp returns the current local time as yyyymmddhhmmss. Appending
// it to generated names keeps them unique across repeated suite runs
// against the same deployment.
func Timestamp() string {
	return time.Now().Format("20060102150405")
}

// RandomString returns n uppercase alphanumeric characters. It is not
// cryptographic and takes no seed; uniqueness within a run is all the
// suite needs.
func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randomAlphabet[rand.Intn(len(randomAlphabet))]
	}
	return string(b)
}

// UUID returns a random UUID string.
func UUID() string {
	return uuid.NewString()
}
