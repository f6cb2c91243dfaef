// Package audit checks a move set end to end: it plays many single-player
// rounds through the session state machine, independently re-verifies every
// reveal against the digest shown before the move, and tests the computer's
// picks for uniformity with a chi-square goodness-of-fit test.
package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/fairrps/internal/fairness"
	"github.com/lox/fairrps/internal/game"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/session"
	"github.com/lox/fairrps/internal/statistics"
)

// DefaultAlpha is the significance level below which the picks are treated as
// non-uniform
const DefaultAlpha = 0.001

// ErrAuditFailed is returned by Report.Err when an audit did not pass
var ErrAuditFailed = errors.New("audit failed")

// Config controls an audit run
type Config struct {
	Rounds  int
	Workers int     // Defaults to runtime.NumCPU()
	Alpha   float64 // Zero selects DefaultAlpha; otherwise in (0, 1)
	Logger  *log.Logger

	// NewRand returns the generator for one worker. Defaults to the CSPRNG.
	NewRand func(worker int) *rand.Rand
	// NewKeySource returns the key byte stream for one worker. Defaults to
	// crypto/rand.
	NewKeySource func(worker int) io.Reader
}

// Report is the outcome of an audit
type Report struct {
	Moves     []string
	Counts    []int // Computer picks per move, in move order
	Expected  float64
	ChiSquare float64
	PValue    float64
	Alpha     float64
	Failures  int // Reveals that did not open the digest shown before the move
	Workers   int
	Duration  time.Duration
	Stats     *statistics.Statistics
}

// Passed reports whether every reveal verified and the picks look uniform
func (r *Report) Passed() bool {
	return r.Failures == 0 && r.PValue >= r.Alpha
}

// Err returns ErrAuditFailed with the reason, or nil when the audit passed
func (r *Report) Err() error {
	switch {
	case r.Failures > 0:
		return fmt.Errorf("%w: %d of %d reveals did not verify", ErrAuditFailed, r.Failures, r.Stats.Rounds)
	case r.PValue < r.Alpha:
		return fmt.Errorf("%w: picks are not uniform (p=%.4g < %.4g)", ErrAuditFailed, r.PValue, r.Alpha)
	}
	return nil
}

// workerResult holds the results from one audit worker
type workerResult struct {
	stats    *statistics.Statistics
	failures int
}

// Run plays cfg.Rounds rounds against rules across cfg.Workers workers
func Run(ctx context.Context, rules *game.RuleTable, cfg Config) (*Report, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, cfg.Rounds)
	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %g", alpha)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("audit")

	newRand := cfg.NewRand
	if newRand == nil {
		newRand = func(int) *rand.Rand { return randutil.New() }
	}
	newKeys := cfg.NewKeySource
	if newKeys == nil {
		newKeys = func(int) io.Reader { return nil }
	}

	start := time.Now()
	roundsPerWorker := cfg.Rounds / workers
	remainder := cfg.Rounds % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan workerResult, workers)

	for w := 0; w < workers; w++ {
		workerRounds := roundsPerWorker
		if w < remainder {
			workerRounds++ // Distribute remainder rounds
		}
		rng := newRand(w)
		keys := newKeys(w)

		g.Go(func() error {
			result, err := runWorker(ctx, rules, workerRounds, rng, keys, logger.With("worker", w))
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			select {
			case results <- result:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	total := statistics.New()
	failures := 0
	for result := range results {
		total.Merge(result.stats)
		failures += result.failures
	}
	if err := total.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Moves:    rules.Moves().Names(),
		Counts:   total.SystemCounts(rules.Moves()),
		Alpha:    alpha,
		Failures: failures,
		Workers:  workers,
		Duration: time.Since(start),
		Stats:    total,
	}
	report.Expected, report.ChiSquare, report.PValue = uniformity(report.Counts)

	logger.Info("Audit complete",
		"rounds", total.Rounds,
		"workers", workers,
		"chi2", report.ChiSquare,
		"p", report.PValue,
		"failures", failures,
		"duration", report.Duration)

	return report, nil
}

// uniformity returns the expected count per move, the chi-square statistic
// of counts against the uniform distribution and its p-value
func uniformity(counts []int) (expected, chi2, p float64) {
	obs := make([]float64, len(counts))
	exp := make([]float64, len(counts))
	total := 0
	for _, c := range counts {
		total += c
	}
	expected = float64(total) / float64(len(counts))
	for i, c := range counts {
		obs[i] = float64(c)
		exp[i] = expected
	}

	chi2 = stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return expected, chi2, dist.Survival(chi2)
}

// runWorker plays rounds in one looping session. The player's moves come from
// the same generator as the computer's but are drawn after each commitment.
func runWorker(ctx context.Context, rules *game.RuleTable, rounds int, rng *rand.Rand, keys io.Reader, logger *log.Logger) (workerResult, error) {
	sess := session.New(rules,
		session.WithRand(rng),
		session.WithKeySource(keys),
		session.WithLoop(true),
		session.WithLogger(logger),
	)

	reply, err := sess.Start()
	if err != nil {
		return workerResult{}, err
	}
	prompt := reply.Prompt
	n := rules.Moves().Len()
	failures := 0

	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return workerResult{}, err
		}

		human := rng.IntN(n) + 1
		reply, err := sess.Handle(strconv.Itoa(human))
		if err != nil {
			return workerResult{}, err
		}
		if reply.Kind != session.ReplyResult {
			return workerResult{}, fmt.Errorf("round %d: unexpected %s reply", i+1, reply.Kind)
		}

		r := reply.Result
		if err := checkResult(rules, prompt, r); err != nil {
			logger.Warn("Reveal failed verification", "round", r.RoundID, "error", err)
			failures++
		}
		prompt = reply.Next
	}

	sess.Abort("audit complete")
	return workerResult{stats: sess.Stats(), failures: failures}, nil
}

// checkResult verifies a result against the prompt shown before the move
func checkResult(rules *game.RuleTable, prompt *session.Prompt, r *session.Result) error {
	if r.RoundID != prompt.RoundID {
		return fmt.Errorf("round id %s does not match prompt %s", r.RoundID, prompt.RoundID)
	}
	if err := fairness.Verify(prompt.Digest, r.Key, r.System.Name); err != nil {
		return err
	}
	want, err := rules.LookupNames(r.Human.Name, r.System.Name)
	if err != nil {
		return err
	}
	if r.Outcome != want {
		return fmt.Errorf("outcome %s, rule table says %s", r.Outcome, want)
	}
	return nil
}
