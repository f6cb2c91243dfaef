package console

import (
	"fmt"
	"strings"

	"github.com/lox/fairrps/internal/game"
	"github.com/lox/fairrps/internal/session"
)

const (
	// MovePrompt is shown while waiting for a move number
	MovePrompt = "Enter your move: "
	// ChoicePrompt is shown in the help menu
	ChoicePrompt = "Enter your choice: "
)

// FormatPrompt renders the move menu for a committed round
func FormatPrompt(p *session.Prompt, styles *Styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", styles.Heading.Render(fmt.Sprintf("Round %d", p.Round)))
	fmt.Fprintf(&b, "Round ID: %s\n", styles.Info.Render(p.RoundID))
	fmt.Fprintf(&b, "HMAC: %s\n", styles.Digest.Render(p.Digest))
	b.WriteString("Available moves:\n")
	for _, m := range p.Moves {
		fmt.Fprintf(&b, "%d - %s\n", m.Number(), m.Name)
	}
	fmt.Fprintf(&b, "%s - exit\n", session.ExitInput)
	fmt.Fprintf(&b, "%s - help\n", session.HelpInput)
	return b.String()
}

// FormatHelpMenu renders the play/exit options shown after the rules
func FormatHelpMenu() string {
	return fmt.Sprintf("%s - play\n%s - exit\n", session.PlayInput, session.ExitInput)
}

// FormatResult renders a resolved round with the revealed key
func FormatResult(r *session.Result, styles *Styles) string {
	var outcome string
	switch r.Outcome {
	case game.Win:
		outcome = styles.Win.Render("You win!")
	case game.Lose:
		outcome = styles.Lose.Render("You lose!")
	default:
		outcome = styles.Draw.Render("Draw!")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your move: %s\n", r.Human.Name)
	fmt.Fprintf(&b, "Computer move: %s\n", r.System.Name)
	fmt.Fprintf(&b, "Outcome: %s %s\n", r.Outcome, outcome)
	fmt.Fprintf(&b, "HMAC key: %s\n", styles.Key.Render(r.Key))
	fmt.Fprintf(&b, "%s\n", styles.Info.Render(VerifyHint(r)))
	return b.String()
}

// VerifyHint is the command a player can run to check the reveal
func VerifyHint(r *session.Result) string {
	round := ""
	if r.RoundID != "" {
		round = "--round " + r.RoundID + " "
	}
	return fmt.Sprintf("Verify with: fairrps verify %s--digest %s --key %s %q", round, r.Digest, r.Key, r.System.Name)
}
