package main

import (
	"fmt"
	"io"

	"github.com/lox/fairrps/internal/game"
)

const invalidMovesMessage = "Invalid input. Please enter an odd number >= 3 of non-repeating moves.\n" +
	"Example: fairrps rock paper scissors"

// parseMoves builds the move set, printing the usage hint to w when the names
// are rejected
func parseMoves(w io.Writer, names []string) (*game.MoveSet, error) {
	ms, err := game.NewMoveSet(names)
	if err != nil {
		fmt.Fprintln(w, invalidMovesMessage)
		return nil, err
	}
	return ms, nil
}
