package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/fairrps/internal/game"
)

type RulesCmd struct {
	Moves []string `arg:"" help:"Move names, in cyclic order"`
}

func (c *RulesCmd) Run(kctx *kong.Context) error {
	if err := c.run(os.Stdout, os.Stderr); err != nil {
		_ = kctx.PrintUsage(true)
		return err
	}
	return nil
}

func (c *RulesCmd) run(out, errOut io.Writer) error {
	ms, err := parseMoves(errOut, c.Moves)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, game.NewRuleTable(ms).Render())
	return err
}
