package artifact

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex SHA3-256 digest of lines as they are written to
// disk (each followed by a newline). Two runs that produce the same list
// have the same digest.
func Digest(lines []string) string {
	h := sha3.New256()
	for _, line := range lines {
		_, _ = h.Write([]byte(line)) //nolint:errcheck // hash writes never fail
		_, _ = h.Write([]byte{'\n'}) //nolint:errcheck // hash writes never fail
	}
	return hex.EncodeToString(h.Sum(nil))
}
