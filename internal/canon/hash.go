package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashWithDomain computes a SHA-256 hash with domain separation:
// SHA256(domain || 0x00 || data). The null byte prevents boundary
// ambiguity between domain and data.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
