package game

// RuleTable holds the outcome of every ordered pair of moves in a MoveSet.
// It is computed once and never modified, so it can be shared freely.
type RuleTable struct {
	moves *MoveSet
	grid  [][]Outcome // grid[a][b] is the outcome of a against b
}

// NewRuleTable builds the full N×N outcome grid for a move set
func NewRuleTable(ms *MoveSet) *RuleTable {
	n := ms.Len()
	grid := make([][]Outcome, n)
	for i := range n {
		grid[i] = make([]Outcome, n)
		for j := range n {
			grid[i][j] = ms.Compare(ms.At(i), ms.At(j))
		}
	}
	return &RuleTable{moves: ms, grid: grid}
}

// Moves returns the move set the table was built from
func (rt *RuleTable) Moves() *MoveSet {
	return rt.moves
}

// Lookup returns the outcome of a against b from a's perspective
func (rt *RuleTable) Lookup(a, b Move) Outcome {
	return rt.grid[a.Index][b.Index]
}

// LookupNames is Lookup keyed by move names
func (rt *RuleTable) LookupNames(a, b string) (Outcome, error) {
	ma, err := rt.moves.Lookup(a)
	if err != nil {
		return Draw, err
	}
	mb, err := rt.moves.Lookup(b)
	if err != nil {
		return Draw, err
	}
	return rt.Lookup(ma, mb), nil
}

// Row returns a copy of the outcomes of a against every move, in move order
func (rt *RuleTable) Row(a Move) []Outcome {
	row := make([]Outcome, len(rt.grid[a.Index]))
	copy(row, rt.grid[a.Index])
	return row
}
