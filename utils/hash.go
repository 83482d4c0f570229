package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ETag returns a strong entity tag of the concatenated data.
func ETag(data ...[]byte) string {
	hash := sha256.New()
	for _, bytes := range data {
		hash.Write(bytes)
	}
	return `"` + hex.EncodeToString(hash.Sum(nil)) + `"`
}
