package utils

import "math/rand"

const suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomSuffix returns n random base36 characters, used for ticket channel
// names. Collisions are not checked.
func RandomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixCharset[rand.Intn(len(suffixCharset))]
	}
	return string(b)
}
