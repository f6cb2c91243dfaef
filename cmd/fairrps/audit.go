package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/fairrps/internal/audit"
	"github.com/lox/fairrps/internal/game"
	"github.com/lox/fairrps/internal/logging"
)

type AuditCmd struct {
	Moves    []string `arg:"" help:"Move names, in cyclic order"`
	Rounds   int      `short:"n" default:"100000" help:"Number of rounds to play"`
	Workers  int      `short:"w" default:"0" help:"Parallel workers (0 uses every CPU)"`
	Alpha    float64  `default:"0.001" help:"Significance level for the uniformity test"`
	LogLevel string   `short:"l" default:"warn" help:"Log level: debug, info, warn or error"`
}

// Validate is called by kong after parsing
func (c *AuditCmd) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("--rounds must be positive, got %d", c.Rounds)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("--alpha must be in (0, 1), got %g", c.Alpha)
	}
	return nil
}

func (c *AuditCmd) Run(kctx *kong.Context) error {
	ms, err := parseMoves(os.Stderr, c.Moves)
	if err != nil {
		_ = kctx.PrintUsage(true)
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{Level: c.LogLevel, Out: os.Stderr})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := setupSignalHandler(logger, true)
	defer cancel()

	return c.run(ctx, ms, os.Stdout, audit.Config{Logger: logger})
}

func (c *AuditCmd) run(ctx context.Context, ms *game.MoveSet, out io.Writer, cfg audit.Config) error {
	cfg.Rounds = c.Rounds
	cfg.Workers = c.Workers
	cfg.Alpha = c.Alpha

	report, err := audit.Run(ctx, game.NewRuleTable(ms), cfg)
	if err != nil {
		return err
	}
	if err := report.Write(out); err != nil {
		return err
	}
	return report.Err()
}
