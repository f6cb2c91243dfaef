package session

import "github.com/lox/fairrps/internal/game"

// State is a position in the round state machine
type State int

const (
	// Idle means no commitment exists yet
	Idle State = iota
	// MoveCommitted means the computer picked a move and published its digest
	MoveCommitted
	// AwaitingHumanInput means the move menu is showing
	AwaitingHumanInput
	// HelpMenu means the rules were shown and the play/exit menu is showing
	HelpMenu
	// Resolved means the round finished and the key was revealed
	Resolved
	// Exited means the player left without resolving the current round
	Exited
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MoveCommitted:
		return "move-committed"
	case AwaitingHumanInput:
		return "awaiting-input"
	case HelpMenu:
		return "help"
	case Resolved:
		return "resolved"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// ReplyKind says what a front end should show after an input
type ReplyKind int

const (
	// ReplyPrompt carries a fresh commitment and the move menu
	ReplyPrompt ReplyKind = iota
	// ReplyHelp carries the rendered rules and the play/exit menu
	ReplyHelp
	// ReplyInvalid carries an error message and, in the move menu, a fresh
	// commitment to prompt with
	ReplyInvalid
	// ReplyResult carries a resolved round
	ReplyResult
	// ReplyExit means the session is over
	ReplyExit
)

// String returns the string representation of a reply kind
func (k ReplyKind) String() string {
	return [...]string{"prompt", "help", "invalid", "result", "exit"}[k]
}

// Prompt is everything the move menu shows
type Prompt struct {
	RoundID string
	Round   int // 1-based, counts resolved rounds
	Digest  string
	Moves   []game.Move
}

// Result is a resolved round together with the opened commitment
type Result struct {
	RoundID string
	Round   int
	Human   game.Move
	System  game.Move
	Outcome game.Outcome // From the player's perspective
	Digest  string
	Key     string
}

// Reply is the session's answer to Start or Handle
type Reply struct {
	Kind    ReplyKind
	Prompt  *Prompt // ReplyPrompt; ReplyInvalid in the move menu
	Rules   string  // ReplyHelp
	Message string  // ReplyInvalid
	Result  *Result // ReplyResult
	Next    *Prompt // ReplyResult when looping: the next round's commitment
}
