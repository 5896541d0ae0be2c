package value

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
//
// The null separator prevents domain/data boundary ambiguity.
func Hash(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
