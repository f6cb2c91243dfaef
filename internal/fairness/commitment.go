// Package fairness implements the commit/reveal protocol that proves the
// computer picked its move before the player did.
//
// The computer commits to a move by publishing HMAC-SHA256(key, move) under a
// fresh random key. The digest reveals nothing about the move without the
// key, and the computer cannot switch moves afterwards without producing a
// different digest. Once the player has chosen, the key is revealed and
// anyone can recompute the digest.
package fairness

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// KeySize is the commitment key length in bytes (256 bits)
const KeySize = 32

var (
	// ErrFairnessViolation means a revealed key does not reproduce the
	// published digest. It indicates a bug or tampering and is never
	// recoverable.
	ErrFairnessViolation = errors.New("fairness violation: key does not reproduce the published digest")
	// ErrAlreadyRevealed is returned by a second Reveal on the same commitment
	ErrAlreadyRevealed = errors.New("commitment already revealed")
)

// Commitment binds the computer to a move without disclosing it. The move and
// key stay private until Reveal.
type Commitment struct {
	move     string
	key      []byte
	digest   []byte
	revealed bool
}

// Opening is what Reveal hands out: the committed move, the key and the
// digest it must reproduce.
type Opening struct {
	Move   string
	Key    []byte
	Digest []byte
}

// Commit generates a fresh KeySize key from random and commits to move. Any
// name is accepted, the empty string included. A nil random uses
// crypto/rand.Reader.
func Commit(move string, random io.Reader) (*Commitment, error) {
	if random == nil {
		random = rand.Reader
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(random, key); err != nil {
		return nil, fmt.Errorf("generate commitment key: %w", err)
	}

	return &Commitment{
		move:   move,
		key:    key,
		digest: Sum(key, move),
	}, nil
}

// Digest returns the hex-encoded digest, safe to publish before the player moves
func (c *Commitment) Digest() string {
	return hex.EncodeToString(c.digest)
}

// Revealed reports whether Reveal has already been called
func (c *Commitment) Revealed() bool {
	return c.revealed
}

// Reveal opens the commitment exactly once. It re-checks the digest before
// handing out the key and returns ErrFairnessViolation if it no longer
// matches.
func (c *Commitment) Reveal() (Opening, error) {
	if c.revealed {
		return Opening{}, ErrAlreadyRevealed
	}
	c.revealed = true

	o := Opening{
		Move:   c.move,
		Key:    append([]byte(nil), c.key...),
		Digest: append([]byte(nil), c.digest...),
	}
	if err := o.Verify(); err != nil {
		return Opening{}, err
	}
	return o, nil
}

// KeyHex returns the key in the textual form shown to players
func (o Opening) KeyHex() string {
	return hex.EncodeToString(o.Key)
}

// DigestHex returns the digest in the textual form shown to players
func (o Opening) DigestHex() string {
	return hex.EncodeToString(o.Digest)
}

// Verify recomputes the digest from the key and move
func (o Opening) Verify() error {
	if !hmac.Equal(Sum(o.Key, o.Move), o.Digest) {
		return fmt.Errorf("%w (move %q)", ErrFairnessViolation, o.Move)
	}
	return nil
}

// Sum computes HMAC-SHA256(key, move)
func Sum(key []byte, move string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(move))
	return mac.Sum(nil)
}
