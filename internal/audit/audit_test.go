package audit

import (
	"bytes"
	"context"
	"io"
	rand "math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairrps/internal/game"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/session"
	"github.com/lox/fairrps/internal/statistics"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func seededConfig(rounds, workers int) Config {
	return Config{
		Rounds:       rounds,
		Workers:      workers,
		Logger:       quietLogger(),
		NewRand:      func(w int) *rand.Rand { return randutil.NewSeeded(int64(w + 1)) },
		NewKeySource: func(w int) io.Reader { return randutil.NewReader(int64(w + 1000)) },
	}
}

func TestRunSeeded(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors", "lizard", "spock"))

	report, err := Run(context.Background(), rules, seededConfig(5000, 4))
	require.NoError(t, err)

	assert.Equal(t, 5000, report.Stats.Rounds)
	assert.Equal(t, 4, report.Workers)
	assert.Equal(t, 0, report.Failures)
	assert.Equal(t, []string{"rock", "paper", "scissors", "lizard", "spock"}, report.Moves)
	assert.InDelta(t, 1000.0, report.Expected, 1e-9)

	sum := 0
	for _, c := range report.Counts {
		sum += c
		assert.InDelta(t, 1000, c, 150)
	}
	assert.Equal(t, 5000, sum)
	assert.True(t, report.Passed())
	assert.NoError(t, report.Err())
	require.NoError(t, report.Stats.Validate())
}

func TestRunIsReproducible(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))

	a, err := Run(context.Background(), rules, seededConfig(600, 3))
	require.NoError(t, err)
	b, err := Run(context.Background(), rules, seededConfig(600, 3))
	require.NoError(t, err)

	assert.Equal(t, a.Counts, b.Counts)
	assert.Equal(t, a.ChiSquare, b.ChiSquare)
}

func TestRunWithSystemRandomness(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))

	report, err := Run(context.Background(), rules, Config{Rounds: 300, Workers: 2, Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, 300, report.Stats.Rounds)
	assert.Equal(t, 0, report.Failures)
}

func TestRunCapsWorkersAtRounds(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))

	report, err := Run(context.Background(), rules, seededConfig(2, 8))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Workers)
	assert.Equal(t, 2, report.Stats.Rounds)
}

func TestRunValidation(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))

	_, err := Run(context.Background(), rules, Config{Rounds: 0})
	assert.ErrorContains(t, err, "rounds must be positive")

	_, err = Run(context.Background(), rules, Config{Rounds: 10, Alpha: 1.5})
	assert.ErrorContains(t, err, "alpha must be in (0, 1)")

	_, err = Run(context.Background(), rules, Config{Rounds: 10, Alpha: -0.01})
	assert.ErrorContains(t, err, "alpha must be in (0, 1)")

	report, err := Run(context.Background(), rules, seededConfig(30, 1))
	require.NoError(t, err)
	assert.Equal(t, DefaultAlpha, report.Alpha)
}

func TestRunCanceled(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, rules, seededConfig(100, 2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUniformity(t *testing.T) {
	expected, chi2, p := uniformity([]int{100, 100, 100})
	assert.InDelta(t, 100, expected, 1e-9)
	assert.InDelta(t, 0, chi2, 1e-9)
	assert.InDelta(t, 1, p, 1e-9)

	_, chi2, p = uniformity([]int{300, 0, 0})
	assert.InDelta(t, 600, chi2, 1e-9)
	assert.Less(t, p, DefaultAlpha)
}

func TestCheckResult(t *testing.T) {
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))
	sess := session.New(rules,
		session.WithRand(randutil.NewSeeded(3)),
		session.WithKeySource(randutil.NewReader(3)),
		session.WithLogger(quietLogger()),
	)
	reply, err := sess.Start()
	require.NoError(t, err)
	prompt := *reply.Prompt

	reply, err = sess.Handle("1")
	require.NoError(t, err)
	result := *reply.Result
	require.NoError(t, checkResult(rules, &prompt, &result))

	t.Run("digest from another round", func(t *testing.T) {
		other := prompt
		other.Digest = strings.Repeat("0", 64)
		assert.Error(t, checkResult(rules, &other, &result))
	})

	t.Run("round id mismatch", func(t *testing.T) {
		other := prompt
		other.RoundID = "00000000000000000000000000"
		assert.ErrorContains(t, checkResult(rules, &other, &result), "round id")
	})

	t.Run("wrong outcome", func(t *testing.T) {
		bad := result
		bad.Outcome = bad.Outcome.Invert()
		if bad.Outcome == result.Outcome {
			bad.Outcome = game.Win
			if result.Outcome == game.Win {
				bad.Outcome = game.Lose
			}
		}
		assert.ErrorContains(t, checkResult(rules, &prompt, &bad), "outcome")
	})
}

func TestReportErr(t *testing.T) {
	stats := statistics.New()
	stats.Rounds = 10

	failed := &Report{Failures: 1, PValue: 0.5, Alpha: DefaultAlpha, Stats: stats}
	assert.False(t, failed.Passed())
	assert.ErrorIs(t, failed.Err(), ErrAuditFailed)
	assert.ErrorContains(t, failed.Err(), "1 of 10 reveals")

	skewed := &Report{PValue: 1e-9, Alpha: DefaultAlpha, Stats: stats}
	assert.False(t, skewed.Passed())
	assert.ErrorContains(t, skewed.Err(), "not uniform")
}

func TestReportWrite(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	rules := game.NewRuleTable(game.MustMoveSet("rock", "paper", "scissors"))
	report, err := Run(context.Background(), rules, seededConfig(90, 3))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf))

	out := buf.String()
	for _, want := range []string{"Move", "Picks", "rock", "paper", "scissors", "Chi-square:", "p-value:", "Rounds:     90 (3 workers"} {
		assert.Contains(t, out, want)
	}
	if report.Passed() {
		assert.Contains(t, out, "PASS")
	} else {
		assert.Contains(t, out, "FAIL")
	}
}
