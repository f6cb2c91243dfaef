// Package session runs rounds of the game as an explicit state machine:
//
//	Idle → MoveCommitted → AwaitingHumanInput → Resolved
//	                          ↕
//	                       HelpMenu
//
// The session never touches a terminal. Front ends feed it one line of input
// at a time through Handle and render the Reply they get back, so the
// readline console and the TUI share every rule about what input means.
package session

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/fairrps/internal/fairness"
	"github.com/lox/fairrps/internal/game"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/roundid"
	"github.com/lox/fairrps/internal/statistics"
)

const (
	// HelpInput opens the rules screen from the move menu
	HelpInput = "?"
	// ExitInput leaves the game from either menu
	ExitInput = "0"
	// PlayInput starts a new round from the help menu
	PlayInput = "1"
)

// ErrInvalidState is returned when Start or Handle is called in a state that
// does not accept it
var ErrInvalidState = errors.New("invalid session state")

// Session plays rounds against one rule table
type Session struct {
	rules  *game.RuleTable
	moves  *game.MoveSet
	rng    *rand.Rand
	keys   io.Reader
	newID  func() string
	logger *log.Logger
	loop   bool

	state      State
	commitment *fairness.Commitment
	prompt     *Prompt
	stats      *statistics.Statistics
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the generator used to pick the computer's move
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithKeySource sets where commitment keys are read from
func WithKeySource(r io.Reader) Option {
	return func(s *Session) { s.keys = r }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithLoop makes the session start a new round after each result instead of
// finishing
func WithLoop(loop bool) Option {
	return func(s *Session) { s.loop = loop }
}

// WithRoundIDs overrides round ID generation
func WithRoundIDs(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// New creates a session in the Idle state. By default moves are picked and
// keys generated from the system CSPRNG.
func New(rules *game.RuleTable, opts ...Option) *Session {
	s := &Session{
		rules:  rules,
		moves:  rules.Moves(),
		rng:    randutil.New(),
		newID:  roundid.New,
		logger: log.New(io.Discard),
		state:  Idle,
		stats:  statistics.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("session")
	return s
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Rules returns the session's rule table
func (s *Session) Rules() *game.RuleTable {
	return s.rules
}

// Stats returns the tally of resolved rounds
func (s *Session) Stats() *statistics.Statistics {
	return s.stats
}

// Prompt returns the current move menu, or nil outside a round
func (s *Session) Prompt() *Prompt {
	return s.prompt
}

// Done reports whether the session accepts no more input
func (s *Session) Done() bool {
	return s.state == Exited || s.state == Resolved
}

// Start commits to the first round and returns the move menu
func (s *Session) Start() (Reply, error) {
	if s.state != Idle {
		return Reply{}, fmt.Errorf("%w: start from %s", ErrInvalidState, s.state)
	}
	p, err := s.commit()
	if err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyPrompt, Prompt: p}, nil
}

// Handle processes one line of player input
func (s *Session) Handle(input string) (Reply, error) {
	input = strings.TrimSpace(input)

	switch s.state {
	case AwaitingHumanInput:
		return s.handleMove(input)
	case HelpMenu:
		return s.handleHelp(input)
	default:
		return Reply{}, fmt.Errorf("%w: input in %s", ErrInvalidState, s.state)
	}
}

// Abort ends the session without resolving the current round, as when input
// is closed. The pending commitment is discarded unopened.
func (s *Session) Abort(reason string) {
	if s.state == Exited {
		return
	}
	s.logger.Info("Session ended", "reason", reason, "state", s.state)
	s.discard()
	s.state = Exited
}

func (s *Session) handleMove(input string) (Reply, error) {
	if input == HelpInput {
		s.state = HelpMenu
		return Reply{Kind: ReplyHelp, Rules: s.rules.Render()}, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 0 || n > s.moves.Len() {
		s.logger.Debug("Invalid move input", "input", input)
		// Recommit so a retry never sees the same digest twice.
		p, err := s.commit()
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Kind:    ReplyInvalid,
			Message: fmt.Sprintf("Invalid input. Please enter a number between 0 and %d.", s.moves.Len()),
			Prompt:  p,
		}, nil
	}

	if n == 0 {
		s.Abort("exit")
		return Reply{Kind: ReplyExit}, nil
	}

	human, _ := s.moves.ByNumber(n)
	return s.resolve(human)
}

// The help menu offers 1 (play) and 0 (exit). Anything else, including 2,
// is rejected and the same two options are shown again.
func (s *Session) handleHelp(input string) (Reply, error) {
	switch input {
	case PlayInput:
		p, err := s.commit()
		if err != nil {
			return Reply{}, err
		}
		return Reply{Kind: ReplyPrompt, Prompt: p}, nil
	case ExitInput:
		s.Abort("exit")
		return Reply{Kind: ReplyExit}, nil
	default:
		return Reply{
			Kind:    ReplyInvalid,
			Message: "Invalid input. Please enter 1 or 0.",
		}, nil
	}
}

// commit runs Idle → MoveCommitted → AwaitingHumanInput with a fresh move
// and key. Any previous unopened commitment is dropped.
func (s *Session) commit() (*Prompt, error) {
	s.discard()

	system := s.moves.At(s.rng.IntN(s.moves.Len()))
	c, err := fairness.Commit(system.Name, s.keys)
	if err != nil {
		s.state = Exited
		return nil, fmt.Errorf("commit to move: %w", err)
	}
	s.commitment = c
	s.state = MoveCommitted

	s.prompt = &Prompt{
		RoundID: s.newID(),
		Round:   s.stats.Rounds + 1,
		Digest:  c.Digest(),
		Moves:   s.moves.Moves(),
	}
	// Only the digest is logged here; the move stays secret until Reveal.
	s.logger.Debug("Committed", "round", s.prompt.RoundID, "digest", s.prompt.Digest)

	s.state = AwaitingHumanInput
	return s.prompt, nil
}

func (s *Session) discard() {
	if s.commitment != nil && !s.commitment.Revealed() {
		s.logger.Debug("Discarding unopened commitment", "round", s.prompt.RoundID)
	}
	s.commitment = nil
}

// resolve opens the commitment only now that the player's move is fixed
func (s *Session) resolve(human game.Move) (Reply, error) {
	opening, err := s.commitment.Reveal()
	if err != nil {
		s.state = Exited
		s.logger.Error("Commitment failed to verify", "round", s.prompt.RoundID, "error", err)
		return Reply{}, err
	}

	system, err := s.moves.Lookup(opening.Move)
	if err != nil {
		s.state = Exited
		return Reply{}, fmt.Errorf("%w: committed move %q is not in the move set", fairness.ErrFairnessViolation, opening.Move)
	}

	result := &Result{
		RoundID: s.prompt.RoundID,
		Round:   s.prompt.Round,
		Human:   human,
		System:  system,
		Outcome: s.rules.Lookup(human, system),
		Digest:  opening.DigestHex(),
		Key:     opening.KeyHex(),
	}
	s.stats.Add(statistics.RoundResult{
		System:  system.Name,
		Outcome: result.Outcome,
	})
	s.commitment = nil
	s.state = Resolved

	s.logger.Info("Round resolved",
		"round", result.RoundID,
		"human", human.Name,
		"system", system.Name,
		"outcome", result.Outcome)

	reply := Reply{Kind: ReplyResult, Result: result}
	if s.loop {
		next, err := s.commit()
		if err != nil {
			return Reply{}, err
		}
		reply.Next = next
	}
	return reply, nil
}
