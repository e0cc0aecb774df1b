package vtfp

import (
	"encoding/hex"
	"fmt"
)

// URNPrefix is the fixed prefix of every rendered fingerprint.
const URNPrefix = "urn:smpte:imf-vtfp:"

// FormatURN renders a raw digest as an IMF-VTFP URN: the prefix followed by
// the first width lowercase hex characters of the digest.
//
// The formatter performs no clamping; width must lie in 1..2*len(digest) or
// an InvalidWidth error is returned. Callers with user-supplied widths (the
// CLI clamps to 2..40) are expected to sanitize first.
func FormatURN(digest []byte, width int) (string, error) {
	hexLen := 2 * len(digest)
	if width < 1 || width > hexLen {
		return "", NewError(KindInvalidWidth, "VTFP-URN-001",
			fmt.Sprintf("fingerprint width %d outside valid range 1..%d", width, hexLen))
	}
	return URNPrefix + hex.EncodeToString(digest)[:width], nil
}
