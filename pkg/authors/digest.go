package authors

import (
	"encoding/hex"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// DigestLen is the length of every [Digest] result in hex characters.
const DigestLen = ripemd160.Size * 2

// Digest returns the lowercase hex RIPEMD-160 of s.
func Digest(s string) string {
	h := ripemd160.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}
