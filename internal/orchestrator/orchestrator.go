// Package orchestrator drives an enumeration run end to end: it resolves the
// resume offset, seeks the enumerator, streams words through the output sink
// and keeps the session record current. A run finishes in exactly one of
// three outcomes: completed, paused or failed.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/davral/wordforge/internal/generate"
	"github.com/davral/wordforge/internal/metrics"
	"github.com/davral/wordforge/internal/session"
	"github.com/davral/wordforge/internal/space"
	"github.com/davral/wordforge/internal/writer"
)

// Outcome is the terminal state of a run.
type Outcome string

const (
	// OutcomeCompleted means the effective limit was reached or the space
	// was exhausted; the session record has been cleared.
	OutcomeCompleted Outcome = "completed"
	// OutcomePaused means the run was cancelled by the user; progress has
	// been persisted for a later resume.
	OutcomePaused Outcome = "paused"
	// OutcomeFailed means an I/O error aborted the run.
	OutcomeFailed Outcome = "failed"
)

// Options configures a run.
type Options struct {
	Spec               *space.Spec
	Output             string
	Prefix             string
	Suffix             string
	Limit              uint64 // 0 = no user limit
	Resume             bool
	CheckpointInterval int
	Throttle           int // words per second, 0 = unlimited
	Workers            int // >1 enables sharded output
	Silent             bool
}

// Result describes how a run ended.
type Result struct {
	Outcome Outcome
	Count   uint64 // words durably emitted, including any resumed prefix
	Elapsed time.Duration
	Outputs []string
}

// Orchestrator composes the enumerator, session store and output sink for
// one output target. The target and its session record are exclusively owned
// by the single active run; concurrent invocations against the same output
// path are unsupported.
type Orchestrator struct {
	opts      Options
	store     *session.Store
	collector *metrics.Collector
	logger    *slog.Logger
	runID     string
}

// New creates an orchestrator for the given options.
func New(opts Options, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		opts:      opts,
		store:     session.NewStore(opts.Output, logger),
		collector: metrics.NewCollector(logger),
		logger:    logger,
		runID:     uuid.New().String(),
	}
}

// SessionPath returns the path of the session record for this run's target.
func (o *Orchestrator) SessionPath() string { return o.store.Path() }

// Run executes the enumeration until the effective limit is reached, the
// space is exhausted, the context is cancelled or an I/O error occurs.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	if o.opts.Workers > 1 {
		return o.runSharded(ctx)
	}

	start := time.Now()
	size := o.opts.Spec.Size()
	effectiveLimit := o.effectiveLimit(size)

	var startOffset uint64
	if o.opts.Resume {
		startOffset = o.store.Read()
		if startOffset > 0 {
			o.logger.Info("Resuming session", "already_emitted", startOffset)
		}
	}

	o.logger.Info("Starting generation",
		"run_id", o.runID,
		"mode", o.opts.Spec.Kind(),
		"total_combinations", size.String(),
		"effective_limit", effectiveLimit.String(),
		"output", o.opts.Output)

	sink, err := writer.Open(o.opts.Output, startOffset > 0, o.logger)
	if err != nil {
		return o.fail(start, startOffset, err)
	}
	defer func() { _ = sink.Close() }()

	enum := generate.New(o.opts.Spec)
	if err := enum.SkipAhead(new(big.Int).SetUint64(startOffset)); err != nil {
		return o.fail(start, startOffset, err)
	}

	bar := o.newProgressBar(effectiveLimit, startOffset)
	limiter := o.newLimiter()
	mode := string(o.opts.Spec.Kind())

	// Cap the loop bound; a run can never physically emit more words than
	// fit in a uint64 anyway.
	limitWords := uint64(math.MaxUint64)
	if effectiveLimit.IsUint64() {
		limitWords = effectiveLimit.Uint64()
	}

	count := startOffset
	sinceCheckpoint := 0
	for count < limitWords {
		// Cancellation is observed only between fully written lines, so a
		// persisted count always names a complete prefix of the output.
		if ctx.Err() != nil {
			return o.pause(start, count, sink)
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return o.pause(start, count, sink)
			}
		}

		word, ok := enum.Next()
		if !ok {
			break
		}
		if err := sink.WriteLine(o.opts.Prefix + word + o.opts.Suffix); err != nil {
			return o.fail(start, count, err)
		}
		count++
		sinceCheckpoint++
		_ = bar.Add(1)
		o.collector.AddWords(mode, 1)

		if sinceCheckpoint >= o.opts.CheckpointInterval {
			sinceCheckpoint = 0
			if err := o.checkpoint(sink, count); err != nil {
				return o.fail(start, count, err)
			}
		}
	}

	if err := sink.Flush(); err != nil {
		return o.fail(start, count, err)
	}

	// Reaching a user limit counts as done, same as exhausting the space:
	// the session record is cleared either way.
	if err := o.store.Clear(); err != nil {
		o.logger.Warn("Failed to remove session file", "error", err)
	}

	elapsed := time.Since(start)
	o.collector.RecordRun(string(OutcomeCompleted))
	o.logger.Info("Generation complete",
		"run_id", o.runID,
		"words", count,
		"elapsed", elapsed,
		"output", o.opts.Output)

	return Result{
		Outcome: OutcomeCompleted,
		Count:   count,
		Elapsed: elapsed,
		Outputs: []string{o.opts.Output},
	}, nil
}

// effectiveLimit is the smaller of the user limit and the space size.
func (o *Orchestrator) effectiveLimit(size *big.Int) *big.Int {
	if o.opts.Limit == 0 {
		return size
	}
	limit := new(big.Int).SetUint64(o.opts.Limit)
	if limit.Cmp(size) > 0 {
		return size
	}
	return limit
}

// checkpoint flushes the sink and persists the count, so the record never
// runs ahead of the bytes on disk. Persist failures are reported but do not
// abort the run; the output itself is still healthy.
func (o *Orchestrator) checkpoint(sink *writer.Sink, count uint64) error {
	flushStart := time.Now()
	if err := sink.Flush(); err != nil {
		return err
	}
	o.collector.ObserveFlush(time.Since(flushStart))

	if err := o.store.Persist(count); err != nil {
		o.logger.Warn("Failed to persist session checkpoint", "error", err)
		return nil
	}
	o.collector.RecordCheckpoint()
	return nil
}

// pause handles user cancellation: flush what was written, persist the
// count and report the paused state. Not an error.
func (o *Orchestrator) pause(start time.Time, count uint64, sink *writer.Sink) (Result, error) {
	if err := sink.Flush(); err != nil {
		return o.fail(start, count, err)
	}
	if err := o.store.Persist(count); err != nil {
		o.logger.Error("Failed to persist session on pause", "error", err)
	}

	elapsed := time.Since(start)
	o.collector.RecordRun(string(OutcomePaused))
	o.logger.Info("Generation paused",
		"run_id", o.runID,
		"words", count,
		"elapsed", elapsed,
		"session_file", o.store.Path())

	return Result{
		Outcome: OutcomePaused,
		Count:   count,
		Elapsed: elapsed,
		Outputs: []string{o.opts.Output},
	}, nil
}

func (o *Orchestrator) fail(start time.Time, count uint64, err error) (Result, error) {
	o.collector.RecordRun(string(OutcomeFailed))
	return Result{
		Outcome: OutcomeFailed,
		Count:   count,
		Elapsed: time.Since(start),
		Outputs: []string{o.opts.Output},
	}, fmt.Errorf("generation failed: %w", err)
}

func (o *Orchestrator) newProgressBar(effectiveLimit *big.Int, startOffset uint64) *progressbar.ProgressBar {
	total := int64(-1) // spinner for spaces beyond int64
	if effectiveLimit.IsInt64() {
		total = effectiveLimit.Int64()
	}
	var bar *progressbar.ProgressBar
	if o.opts.Silent {
		bar = progressbar.DefaultSilent(total, "Generating")
	} else {
		bar = progressbar.Default(total, "Generating")
	}
	if startOffset > 0 && startOffset <= math.MaxInt64 {
		_ = bar.Set64(int64(startOffset))
	}
	return bar
}

func (o *Orchestrator) newLimiter() *rate.Limiter {
	if o.opts.Throttle <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(o.opts.Throttle), o.opts.Throttle)
}
