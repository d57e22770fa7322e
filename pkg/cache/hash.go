package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// Cache keys for parse results are Key("parse", Hash(diagramText)).
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key builds a namespaced cache key of the form "prefix:hash".
func Key(prefix, hash string) string {
	return prefix + ":" + hash
}
