package linguachain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and target language.
// The language is trimmed and lowercased so "TE" and "te " share entries.
func CacheKey(hash, targetLang string) string {
	return hash + ":" + strings.ToLower(strings.TrimSpace(targetLang))
}
