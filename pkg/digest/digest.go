// Package digest derives item identifiers from the identifier-bearing text of a feed.
package digest

import (
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
)

// Size is the length of a digest in hex characters.
const Size = sha1.Size * 2

// Hash returns a lowercase hex SHA-1 digest of the text.
func Hash(text string) string {
	sum := sha1.Sum([]byte(text)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
