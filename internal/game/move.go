package game

// Move is a single named move. Identity is by name; the position inside its
// MoveSet drives comparison.
type Move struct {
	Name  string
	Index int // 0-based position in the owning MoveSet
}

// String returns the move name
func (m Move) String() string {
	return m.Name
}

// Number returns the 1-based number shown to players when choosing a move
func (m Move) Number() int {
	return m.Index + 1
}
