package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/fairrps/internal/fairness"
	"github.com/lox/fairrps/internal/roundid"
)

type VerifyCmd struct {
	Digest string `required:"" help:"HMAC digest shown before your move (hex)"`
	Key    string `required:"" help:"HMAC key revealed after your move (hex)"`
	Round  string `help:"Round ID shown with the digest, to report when the move was committed"`
	Move   string `arg:"" help:"Computer move that was revealed"`
}

func (c *VerifyCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *VerifyCmd) run(out io.Writer) error {
	var committed time.Time
	if c.Round != "" {
		at, err := roundid.Time(c.Round)
		if err != nil {
			return fmt.Errorf("invalid round ID: %w", err)
		}
		committed = at
	}

	if err := fairness.Verify(c.Digest, c.Key, c.Move); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "verified: HMAC-SHA256(key, %q) matches the committed digest\n", c.Move); err != nil {
		return err
	}
	if !committed.IsZero() {
		_, err := fmt.Fprintf(out, "round %s was committed at %s\n", c.Round, committed.UTC().Format(time.RFC3339Nano))
		return err
	}
	return nil
}
