// Package roundid generates identifiers for game rounds: UUIDv7 values
// encoded as 26-character Crockford base32 strings (TypeID style), so they
// sort by creation time.
package roundid

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Length is the encoded identifier length
const Length = 26

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New creates a round ID from a fresh UUIDv7
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system random source does
		panic("roundid: " + err.Error())
	}
	return Encode(id)
}

// Encode encodes a UUID as 26 base32 characters. The 128 bits are treated
// as a 130-bit value with two leading zero bits, so the first character is
// always 0-7.
func Encode(id uuid.UUID) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Decode reverses Encode
func Decode(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.UUID{}, err
	}

	var hi, lo uint64
	for i := 0; i < Length; i++ {
		v := uint64(strings.IndexByte(alphabet, s[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], hi)
	binary.BigEndian.PutUint64(id[8:], lo)
	return id, nil
}

// Time returns the moment a round ID was created, to millisecond precision
func Time(id string) (time.Time, error) {
	u, err := Decode(id)
	if err != nil {
		return time.Time{}, err
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("round ID holds a version %d UUID, want 7", u.Version())
	}
	ms := binary.BigEndian.Uint64(u[:8]) >> 16
	return time.UnixMilli(int64(ms)), nil
}

// Validate checks if a round ID is well formed
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}

	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
