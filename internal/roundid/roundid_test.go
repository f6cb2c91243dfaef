package roundid

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()

	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
	assert.LessOrEqual(t, id[0], byte('7'))
}

func TestNewUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := New()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestNewTimeSorted(t *testing.T) {
	var ids []string
	for range 10 {
		ids = append(ids, New())
		time.Sleep(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for range 20 {
		id, err := uuid.NewV7()
		require.NoError(t, err)

		decoded, err := Decode(Encode(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestEncodeBoundaries(t *testing.T) {
	assert.Equal(t, strings.Repeat("0", Length), Encode(uuid.UUID{}))

	var max uuid.UUID
	for i := range max {
		max[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), Encode(max))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abcu", true},
		{"upper case", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTime(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	id := New()
	after := time.Now()

	at, err := Time(id)
	require.NoError(t, err)
	assert.False(t, at.Before(before), "%s before %s", at, before)
	assert.False(t, at.After(after), "%s after %s", at, after)

	_, err = Time("not-a-round-id")
	assert.Error(t, err)

	_, err = Time(Encode(uuid.Nil))
	assert.ErrorContains(t, err, "want 7")
}
