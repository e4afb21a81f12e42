package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// StorageKey returns a filesystem-safe namespace for a session token or
// user identifier. Tokens are opaque and may contain characters unsafe
// for object keys, so they are hashed rather than embedded.
func StorageKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
