package fairness

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Verify checks a published digest against a revealed key and move name, all
// as shown to the player. Hex input is case-insensitive and may carry
// surrounding whitespace.
func Verify(digestHex, keyHex, move string) error {
	digest, err := decodeHex("digest", digestHex)
	if err != nil {
		return err
	}
	key, err := decodeHex("key", keyHex)
	if err != nil {
		return err
	}
	return Opening{Move: move, Key: key, Digest: digest}.Verify()
}

func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("invalid %s: empty", field)
	}
	return b, nil
}
