package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassicRockPaperScissors(t *testing.T) {
	rules := NewRuleTable(MustMoveSet("rock", "paper", "scissors"))

	expected := map[[2]string]Outcome{
		{"rock", "rock"}:         Draw,
		{"rock", "paper"}:        Lose,
		{"rock", "scissors"}:     Win,
		{"paper", "rock"}:        Win,
		{"paper", "paper"}:       Draw,
		{"paper", "scissors"}:    Lose,
		{"scissors", "rock"}:     Lose,
		{"scissors", "paper"}:    Win,
		{"scissors", "scissors"}: Draw,
	}

	for pair, want := range expected {
		got, err := rules.LookupNames(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, want, got, "%s vs %s", pair[0], pair[1])
	}
}

// Five moves in argument order rock, paper, scissors, lizard, spock. The
// cycle comes from the order, so the table is checked against the circle
// rather than the classic RPSLS rules.
func TestFiveMoveTableFollowsArgumentOrder(t *testing.T) {
	rules := NewRuleTable(MustMoveSet("rock", "paper", "scissors", "lizard", "spock"))

	check := func(a, b string, want Outcome) {
		t.Helper()
		got, err := rules.LookupNames(a, b)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%s vs %s", a, b)
	}

	check("lizard", "paper", Win)
	check("lizard", "scissors", Win)
	check("lizard", "spock", Lose)
	check("lizard", "rock", Lose)
	check("lizard", "lizard", Draw)

	check("rock", "lizard", Win)
	check("rock", "spock", Win)
	check("rock", "paper", Lose)
	check("rock", "scissors", Lose)

	check("spock", "rock", Lose)
	check("spock", "paper", Lose)
	check("spock", "scissors", Win)
	check("spock", "lizard", Win)
}

func TestRuleTableInvariants(t *testing.T) {
	for _, n := range []int{3, 5, 7, 11} {
		ms := MustMoveSet(generateNames(n)...)
		rules := NewRuleTable(ms)

		for _, a := range ms.Moves() {
			wins, losses := 0, 0
			for _, b := range ms.Moves() {
				got := rules.Lookup(a, b)
				assert.Equal(t, got.Invert(), rules.Lookup(b, a), "antisymmetry %s/%s", a, b)
				if a == b {
					assert.Equal(t, Draw, got)
					continue
				}
				switch got {
				case Win:
					wins++
				case Lose:
					losses++
				default:
					t.Errorf("%s vs %s must not draw", a, b)
				}
			}
			assert.Equal(t, ms.Half(), wins, "%s wins", a)
			assert.Equal(t, ms.Half(), losses, "%s losses", a)
		}
	}
}

func TestRuleTableLookupNamesUnknown(t *testing.T) {
	rules := NewRuleTable(MustMoveSet("rock", "paper", "scissors"))

	_, err := rules.LookupNames("rock", "spock")
	assert.ErrorIs(t, err, ErrUnknownMove)
	_, err = rules.LookupNames("spock", "rock")
	assert.ErrorIs(t, err, ErrUnknownMove)
}

func TestRuleTableRowIsACopy(t *testing.T) {
	rules := NewRuleTable(MustMoveSet("rock", "paper", "scissors"))
	rock := rules.Moves().At(0)

	row := rules.Row(rock)
	assert.Equal(t, []Outcome{Draw, Lose, Win}, row)

	row[1] = Win
	assert.Equal(t, Lose, rules.Lookup(rock, rules.Moves().At(1)))
}

func TestRuleTableRender(t *testing.T) {
	rules := NewRuleTable(MustMoveSet("rock", "paper", "scissors"))
	out := rules.Render()

	assert.Contains(t, out, RulesTitle)
	for _, name := range []string{"rock", "paper", "scissors"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Win")
	assert.Contains(t, out, "Lose")
	assert.Contains(t, out, "Draw")

	// title, caption, top border, header, separator, three rows, bottom border
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 9)
}
