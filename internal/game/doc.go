// Package game implements the move rules for generalized rock-paper-scissors
// over any odd number (at least three) of named moves.
//
// The main types are MoveSet, which owns the ordered moves and the cyclic
// comparison, and RuleTable, which precomputes the outcome of every ordered
// pair for constant-time lookup and renders the help screen.
//
// # Basic Usage
//
//	ms, err := game.NewMoveSet([]string{"rock", "paper", "scissors"})
//	if err != nil {
//	    // configuration error: fewer than 3, even count, or repeated name
//	}
//	rules := game.NewRuleTable(ms)
//	rock, _ := ms.Lookup("rock")
//	scissors, _ := ms.Lookup("scissors")
//	rules.Lookup(rock, scissors) // game.Win
//
// # Ordering
//
// Move order is significant. Placing the moves on a circle, each move loses
// to the (N-1)/2 moves that follow it and beats the (N-1)/2 moves that
// precede it. Reordering the same names changes the rules.
package game
