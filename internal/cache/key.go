package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives a deterministic cache key. Operation and baseURL are normalised
// so "Manufacturers" against "http://host/" and "manufacturers" against
// "http://host" share an entry. Params are order-sensitive.
func Key(operation, baseURL string, params ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(operation))))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimRight(strings.TrimSpace(baseURL), "/")))
	for _, p := range params {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
