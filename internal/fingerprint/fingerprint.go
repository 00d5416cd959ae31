// Package fingerprint derives stable identifiers for note lines so that
// re-submitting an overlapping note never stores the same transaction twice.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hexLen is the number of hex characters kept from the digest. 16 chars
// (64 bits) is plenty for a personal ledger measured in thousands of lines.
const hexLen = 16

// Line returns the fingerprint of an original note line. Leading and trailing
// whitespace is ignored; everything else, including inner spacing and casing,
// is significant.
func Line(sourceLine string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(sourceLine)))
	return "fl_" + hex.EncodeToString(sum[:])[:hexLen]
}
