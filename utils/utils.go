package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandKey returns size random bytes, base64 encoded
func RandKey(size int) string {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}
