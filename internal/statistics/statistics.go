package statistics

import (
	"fmt"

	"github.com/lox/fairrps/internal/game"
)

// RoundResult is the outcome of one resolved round
type RoundResult struct {
	System  string       // Move the computer committed to
	Outcome game.Outcome // From the player's perspective
}

// Statistics tallies resolved rounds
type Statistics struct {
	Rounds int
	Wins   int
	Losses int
	Draws  int

	// How often each move was played, keyed by move name
	SystemPicks map[string]int
}

// New creates an empty tally
func New() *Statistics {
	return &Statistics{
		SystemPicks: make(map[string]int),
	}
}

// Add incorporates a resolved round
func (s *Statistics) Add(r RoundResult) {
	s.Rounds++
	switch r.Outcome {
	case game.Win:
		s.Wins++
	case game.Lose:
		s.Losses++
	default:
		s.Draws++
	}
	s.SystemPicks[r.System]++
}

// Merge folds another tally into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Draws += other.Draws
	for k, v := range other.SystemPicks {
		s.SystemPicks[k] += v
	}
}

// WinRate returns the fraction of rounds the player won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// SystemCounts returns how often the computer picked each move, in move order
func (s *Statistics) SystemCounts(ms *game.MoveSet) []int {
	counts := make([]int, ms.Len())
	for i, name := range ms.Names() {
		counts[i] = s.SystemPicks[name]
	}
	return counts
}

// Validate checks the tally is internally consistent
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Draws != s.Rounds {
		return fmt.Errorf("outcome mismatch: %d wins + %d losses + %d draws != %d rounds",
			s.Wins, s.Losses, s.Draws, s.Rounds)
	}
	picks := 0
	for _, v := range s.SystemPicks {
		picks += v
	}
	if picks != s.Rounds {
		return fmt.Errorf("pick mismatch: %d system picks for %d rounds", picks, s.Rounds)
	}
	return nil
}

// Summary returns a one-line score
func (s *Statistics) Summary() string {
	return fmt.Sprintf("%d rounds: %d won, %d lost, %d drawn (%.0f%% wins)",
		s.Rounds, s.Wins, s.Losses, s.Draws, s.WinRate()*100)
}
