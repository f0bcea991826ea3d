package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var reID32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns exactly 32 lowercase hex characters (no separators/prefixes).
// Used for transfer ids; panics only if the OS entropy source is broken.
func NewID32() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("id: crypto/rand: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// IsID32 reports whether s has the NewID32 shape.
func IsID32(s string) bool { return reID32.MatchString(s) }
