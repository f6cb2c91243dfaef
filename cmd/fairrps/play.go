package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/fairrps/internal/config"
	"github.com/lox/fairrps/internal/console"
	"github.com/lox/fairrps/internal/game"
	"github.com/lox/fairrps/internal/logging"
	"github.com/lox/fairrps/internal/session"
	"github.com/lox/fairrps/internal/tui"
)

type PlayCmd struct {
	Moves       []string      `arg:"" optional:"" help:"Move names: an odd number (3 or more) of distinct names, in cyclic order"`
	Config      string        `short:"c" help:"Path to an HCL configuration file (none is read unless given)"`
	Loop        bool          `help:"Keep playing new rounds until 0 is entered (overrides config)"`
	IdleTimeout time.Duration `help:"Exit when no input arrives for this long, 0 waits forever (overrides config)"`
	TUI         bool          `name:"tui" help:"Use the full-screen interface"`
	NoColor     bool          `help:"Disable colored output (overrides config)"`
	LogLevel    string        `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	LogFile     string        `help:"Log file path (overrides config)"`
}

func (c *PlayCmd) Run(kctx *kong.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ms, err := parseMoves(os.Stderr, cfg.Moves)
	if err != nil {
		_ = kctx.PrintUsage(true)
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var logOut io.Writer = os.Stderr
	if c.TUI {
		// The TUI owns the screen, so only a log file receives diagnostics.
		logOut = nil
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Out:   logOut,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	if !cfg.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	idleTimeout, err := cfg.IdleTimeoutDuration()
	if err != nil {
		return err
	}

	rules := game.NewRuleTable(ms)
	sess := session.New(rules,
		session.WithLogger(logger),
		session.WithLoop(cfg.Loop),
	)
	logger.Debug("Starting", "moves", ms.Names(), "loop", cfg.Loop, "tui", c.TUI)

	if c.TUI {
		return tui.Run(sess, logger, tui.Options{
			IdleTimeout: idleTimeout,
			ShowScore:   cfg.Loop,
		})
	}

	ctx, cancel := setupSignalHandler(logger, false)
	defer cancel()

	styles := console.DefaultStyles()
	rl, err := console.NewReadline(os.Stdin, os.Stdout, styles)
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	return console.New(sess, rl, console.Config{
		Out:         rl.Stdout(),
		Styles:      styles,
		IdleTimeout: idleTimeout,
		Logger:      logger,
		ShowScore:   cfg.Loop,
	}).Run(ctx)
}

// loadConfig loads the config file and applies command line overrides
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		cfg, err = config.Load(c.Config)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	// Apply command line overrides
	if len(c.Moves) > 0 {
		cfg.Moves = c.Moves
	}
	if c.Loop {
		cfg.Loop = true
	}
	if c.IdleTimeout != 0 {
		cfg.IdleTimeout = c.IdleTimeout.String()
	}
	if c.NoColor {
		color := false
		cfg.Color = &color
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	return cfg, nil
}
