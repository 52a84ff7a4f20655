// Package identity derives stable person identifiers from source pointers.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Length is the number of hex characters kept from the digest.
const Length = 30

// ID is a lower-case hexadecimal person identifier.
type ID string

// Assign hashes the pointer with its '@' delimiters removed. The same pointer
// always yields the same ID, across runs and processes. Collisions are not
// detected.
func Assign(pointer string) ID {
	sum := md5.Sum([]byte(strings.ReplaceAll(pointer, "@", "")))
	return ID(hex.EncodeToString(sum[:])[:Length])
}

// Prefix returns the first n characters, or the whole ID when n is out of range.
func (id ID) Prefix(n int) string {
	if n <= 0 || n >= len(id) {
		return string(id)
	}
	return string(id[:n])
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}
