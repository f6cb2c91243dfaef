package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play against the computer (default command)"`
	Rules   RulesCmd         `cmd:"" help:"Print the rule table for a move set"`
	Verify  VerifyCmd        `cmd:"" help:"Check a revealed HMAC key against the digest shown before your move"`
	Audit   AuditCmd         `cmd:"" help:"Play many simulated rounds and test the computer's picks for fairness"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fairrps"),
		kong.Description("Provably fair rock-paper-scissors for any odd number of moves"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
