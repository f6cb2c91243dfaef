package game

import (
	"errors"
	"fmt"
)

// MinMoves is the smallest playable move set
const MinMoves = 3

var (
	// ErrTooFewMoves is returned when fewer than MinMoves names are given
	ErrTooFewMoves = errors.New("at least 3 moves are required")
	// ErrEvenMoveCount is returned for an even number of moves
	ErrEvenMoveCount = errors.New("the number of moves must be odd")
	// ErrDuplicateMove is returned when a name appears more than once
	ErrDuplicateMove = errors.New("move names must not repeat")
	// ErrUnknownMove is returned when looking up a name that is not in the set
	ErrUnknownMove = errors.New("unknown move")
)

// MoveSet is an immutable, ordered collection of distinct moves. The order
// places the moves on a circle: each move loses to the half of the set that
// follows it and beats the half that precedes it.
type MoveSet struct {
	moves  []Move
	byName map[string]int
}

// ValidateNames checks that names form a playable move set: at least three,
// an odd count, and no repeats (exact, case-sensitive match).
func ValidateNames(names []string) error {
	if len(names) < MinMoves {
		return fmt.Errorf("%w, got %d", ErrTooFewMoves, len(names))
	}
	if len(names)%2 == 0 {
		return fmt.Errorf("%w, got %d", ErrEvenMoveCount, len(names))
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateMove, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// NewMoveSet creates a move set from names in the given order
func NewMoveSet(names []string) (*MoveSet, error) {
	if err := ValidateNames(names); err != nil {
		return nil, err
	}

	ms := &MoveSet{
		moves:  make([]Move, len(names)),
		byName: make(map[string]int, len(names)),
	}
	for i, name := range names {
		ms.moves[i] = Move{Name: name, Index: i}
		ms.byName[name] = i
	}
	return ms, nil
}

// MustMoveSet is like NewMoveSet but panics on invalid input. Intended for
// tests and fixed, known-good move lists.
func MustMoveSet(names ...string) *MoveSet {
	ms, err := NewMoveSet(names)
	if err != nil {
		panic(err)
	}
	return ms
}

// Len returns the number of moves
func (ms *MoveSet) Len() int {
	return len(ms.moves)
}

// Half returns how many moves each move beats (and loses to)
func (ms *MoveSet) Half() int {
	return len(ms.moves) / 2
}

// Moves returns a copy of the moves in order
func (ms *MoveSet) Moves() []Move {
	out := make([]Move, len(ms.moves))
	copy(out, ms.moves)
	return out
}

// Names returns the move names in order
func (ms *MoveSet) Names() []string {
	names := make([]string, len(ms.moves))
	for i, m := range ms.moves {
		names[i] = m.Name
	}
	return names
}

// At returns the move at a 0-based index. It panics when i is out of range.
func (ms *MoveSet) At(i int) Move {
	return ms.moves[i]
}

// ByNumber returns the move shown to players as number n (1-based)
func (ms *MoveSet) ByNumber(n int) (Move, bool) {
	if n < 1 || n > len(ms.moves) {
		return Move{}, false
	}
	return ms.moves[n-1], true
}

// Lookup finds a move by its exact name
func (ms *MoveSet) Lookup(name string) (Move, error) {
	i, ok := ms.byName[name]
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return ms.moves[i], nil
}

// others returns the N-1 moves that follow m, wrapping around the circle
func (ms *MoveSet) others(m Move) []Move {
	n := len(ms.moves)
	out := make([]Move, 0, n-1)
	for k := 1; k < n; k++ {
		out = append(out, ms.moves[(m.Index+k)%n])
	}
	return out
}

// LosesTo returns the moves that beat m: the first half of the moves
// following m around the circle.
func (ms *MoveSet) LosesTo(m Move) []Move {
	return ms.others(m)[:ms.Half()]
}

// Beats returns the moves m beats: the first half of the moves following m,
// read in reverse (the moves approaching m from behind).
func (ms *MoveSet) Beats(m Move) []Move {
	ahead := ms.others(m)
	behind := make([]Move, 0, ms.Half())
	for k := len(ahead) - 1; k >= len(ahead)-ms.Half(); k-- {
		behind = append(behind, ahead[k])
	}
	return behind
}

// Compare returns the outcome of a against b from a's perspective. Both moves
// must belong to this set.
func (ms *MoveSet) Compare(a, b Move) Outcome {
	n := len(ms.moves)
	d := ((b.Index-a.Index)%n + n) % n
	switch {
	case d == 0:
		return Draw
	case d <= ms.Half():
		return Lose
	default:
		return Win
	}
}
