package game

// Outcome is the result of comparing two moves, from the perspective of the
// first (reference) move.
type Outcome int

const (
	// Draw when both sides picked the same move
	Draw Outcome = iota
	// Win when the reference move beats the other move
	Win
	// Lose when the other move beats the reference move
	Lose
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// Invert returns the same result seen from the other side.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	default:
		return o
	}
}
