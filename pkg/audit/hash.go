package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashBundle computes the hex-encoded SHA-256 hash of a bundle's content.
// The ContentHash field itself is excluded from the hashed payload so the
// hash can be stored inside the bundle it verifies. JSON marshalling sorts
// map keys, so the hash is deterministic for identical content.
func HashBundle(b *Bundle) (string, error) {
	clone := *b
	clone.ContentHash = ""

	data, err := json.Marshal(&clone)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// VerifyBundle reports whether a bundle's recorded content hash matches its
// content.
func VerifyBundle(b *Bundle) (bool, error) {
	computed, err := HashBundle(b)
	if err != nil {
		return false, err
	}
	return computed == b.ContentHash, nil
}
