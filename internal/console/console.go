// Package console is the line-oriented front end: one prompt, one line of
// input, read through readline.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/coder/quartz"

	"github.com/lox/fairrps/internal/session"
)

// ErrIdleTimeout is returned by a read that saw no input within the idle timeout
var ErrIdleTimeout = errors.New("no input before idle timeout")

// LineReader reads one line of player input at a time. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Config holds optional console settings
type Config struct {
	Out         io.Writer     // Defaults to io.Discard
	Styles      *Styles       // Defaults to DefaultStyles()
	Clock       quartz.Clock  // Defaults to the real clock
	IdleTimeout time.Duration // Zero waits forever
	Logger      *log.Logger
	ShowScore   bool // Print the tally when the session ends
}

// Console drives a session from a LineReader
type Console struct {
	session     *session.Session
	in          LineReader
	out         io.Writer
	styles      *Styles
	clock       quartz.Clock
	idleTimeout time.Duration
	logger      *log.Logger
	showScore   bool
}

// New creates a console for a session
func New(sess *session.Session, in LineReader, cfg Config) *Console {
	c := &Console{
		session:     sess,
		in:          in,
		out:         cfg.Out,
		styles:      cfg.Styles,
		clock:       cfg.Clock,
		idleTimeout: cfg.IdleTimeout,
		logger:      cfg.Logger,
		showScore:   cfg.ShowScore,
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.styles == nil {
		c.styles = DefaultStyles()
	}
	if c.clock == nil {
		c.clock = quartz.NewReal()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.logger = c.logger.WithPrefix("console")
	return c
}

// NewReadline creates the readline instance used in interactive play. No
// history file is configured, so nothing is written to disk.
func NewReadline(stdin io.ReadCloser, stdout io.Writer, styles *Styles) (*readline.Instance, error) {
	if styles == nil {
		styles = DefaultStyles()
	}
	return readline.NewEx(&readline.Config{
		Prompt:                 styles.Prompt.Render(MovePrompt),
		InterruptPrompt:        "^C",
		EOFPrompt:              session.ExitInput,
		Stdin:                  stdin,
		Stdout:                 stdout,
		DisableAutoSaveHistory: true,
	})
}

// Run plays until the session is done, input closes, the idle timeout fires
// or ctx is cancelled. Only those clean exits return nil; errors from the
// session (a broken commitment) are returned as is.
func (c *Console) Run(ctx context.Context) error {
	reply, err := c.session.Start()
	if err != nil {
		return err
	}
	c.render(reply)

	for !c.session.Done() {
		line, err := c.readLine(ctx)
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			c.println(c.styles.Info.Render("Enter 0 to exit"))
			continue
		case errors.Is(err, io.EOF):
			c.session.Abort("input closed")
		case errors.Is(err, ErrIdleTimeout):
			c.println(c.styles.Info.Render(fmt.Sprintf("No input for %s, exiting.", c.idleTimeout)))
			c.session.Abort("idle timeout")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.session.Abort("cancelled")
		case err != nil:
			c.session.Abort("read error")
			return fmt.Errorf("read input: %w", err)
		default:
			reply, err := c.session.Handle(line)
			if err != nil {
				return err
			}
			c.render(reply)
		}
	}

	if c.showScore && c.session.Stats().Rounds > 0 {
		c.println(c.styles.Info.Render(c.session.Stats().Summary()))
	}
	return nil
}

// readLine waits for one line, the idle timeout or ctx, whichever is first
func (c *Console) readLine(ctx context.Context) (string, error) {
	if c.idleTimeout <= 0 && ctx.Done() == nil {
		return c.in.Readline()
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	timedOut := make(chan struct{})

	if c.idleTimeout > 0 {
		timer := c.clock.AfterFunc(c.idleTimeout, func() {
			close(timedOut)
		})
		defer timer.Stop()
	}

	go func() {
		line, err := c.in.Readline()
		done <- result{line: line, err: err}
	}()

	select {
	case r := <-done:
		return r.line, r.err
	case <-timedOut:
		c.logger.Debug("Idle timeout", "after", c.idleTimeout)
		return "", ErrIdleTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Console) render(reply session.Reply) {
	switch reply.Kind {
	case session.ReplyPrompt:
		c.showPrompt(reply.Prompt)
	case session.ReplyHelp:
		c.println(reply.Rules)
		c.print(FormatHelpMenu())
		c.in.SetPrompt(c.styles.Prompt.Render(ChoicePrompt))
	case session.ReplyInvalid:
		c.println(c.styles.Error.Render(reply.Message))
		if reply.Prompt != nil {
			c.showPrompt(reply.Prompt)
		} else {
			c.print(FormatHelpMenu())
		}
	case session.ReplyResult:
		c.print(FormatResult(reply.Result, c.styles))
		if reply.Next != nil {
			c.println("")
			c.showPrompt(reply.Next)
		}
	case session.ReplyExit:
	}
}

func (c *Console) showPrompt(p *session.Prompt) {
	c.print(FormatPrompt(p, c.styles))
	c.in.SetPrompt(c.styles.Prompt.Render(MovePrompt))
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
