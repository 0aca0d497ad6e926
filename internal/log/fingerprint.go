package log

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a short, stable identifier for a secret so log lines
// can correlate a credential without revealing it.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:6])
}
