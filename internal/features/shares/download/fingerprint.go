package shares_download

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives a per-client identifier from the network address
// and agent string. Weak and spoofable on purpose: it dampens duplicate
// counting, it is not a security control.
func Fingerprint(clientIP string, userAgent string) string {
	sum := sha256.Sum256([]byte(clientIP + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}
