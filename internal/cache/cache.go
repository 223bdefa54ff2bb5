package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching extraction results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from document text. Identical documents get
// identical keys, so a second verification against the same agreement
// skips the backend call.
func Key(documentText string) string {
	hash := sha256.Sum256([]byte(documentText))
	return "rentproof:v1:" + hex.EncodeToString(hash[:])
}
