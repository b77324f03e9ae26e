package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/davral/wordforge/internal/generate"
	"github.com/davral/wordforge/internal/writer"
)

// ErrShardedResume is returned when a resume is requested together with
// multiple workers. Shards carry no session record.
var ErrShardedResume = errors.New("resume is not supported with multiple workers")

// runSharded partitions [0, effectiveLimit) into one contiguous index range
// per worker and writes each range to its own shard file next to the output
// target. The per-worker seek makes the ranges disjoint and order-preserving
// within a shard; concatenating the shards in index order reproduces the
// single-writer output. Cancellation pauses the run but persists nothing:
// sharded runs cannot be resumed.
func (o *Orchestrator) runSharded(ctx context.Context) (Result, error) {
	if o.opts.Resume {
		return Result{Outcome: OutcomeFailed}, ErrShardedResume
	}

	start := time.Now()
	size := o.opts.Spec.Size()
	effectiveLimit := o.effectiveLimit(size)
	workers := o.opts.Workers

	o.logger.Info("Starting sharded generation",
		"run_id", o.runID,
		"mode", o.opts.Spec.Kind(),
		"total_combinations", size.String(),
		"effective_limit", effectiveLimit.String(),
		"workers", workers,
		"output", o.opts.Output)

	bar := o.newProgressBar(effectiveLimit, 0)
	limiter := o.newLimiter()
	mode := string(o.opts.Spec.Kind())

	var total atomic.Uint64
	outputs := make([]string, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		lo := shardBound(effectiveLimit, i, workers)
		hi := shardBound(effectiveLimit, i+1, workers)
		span := new(big.Int).Sub(hi, lo)
		path := fmt.Sprintf("%s.shard%d", o.opts.Output, i)
		outputs[i] = path

		g.Go(func() error {
			return o.runShard(gctx, path, lo, span, bar, limiter, mode, &total)
		})
	}

	err := g.Wait()
	elapsed := time.Since(start)
	count := total.Load()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			o.collector.RecordRun(string(OutcomePaused))
			o.logger.Info("Sharded generation cancelled; shards cannot be resumed",
				"run_id", o.runID, "words", count, "elapsed", elapsed)
			return Result{
				Outcome: OutcomePaused,
				Count:   count,
				Elapsed: elapsed,
				Outputs: outputs,
			}, nil
		}
		o.collector.RecordRun(string(OutcomeFailed))
		return Result{
			Outcome: OutcomeFailed,
			Count:   count,
			Elapsed: elapsed,
			Outputs: outputs,
		}, fmt.Errorf("generation failed: %w", err)
	}

	o.collector.RecordRun(string(OutcomeCompleted))
	o.logger.Info("Sharded generation complete",
		"run_id", o.runID,
		"words", count,
		"elapsed", elapsed,
		"shards", workers)

	return Result{
		Outcome: OutcomeCompleted,
		Count:   count,
		Elapsed: elapsed,
		Outputs: outputs,
	}, nil
}

// shardBound returns limit*i/n, the start of shard i's index range.
func shardBound(limit *big.Int, i, n int) *big.Int {
	b := new(big.Int).Mul(limit, big.NewInt(int64(i)))
	return b.Quo(b, big.NewInt(int64(n)))
}

func (o *Orchestrator) runShard(
	ctx context.Context,
	path string,
	offset, span *big.Int,
	bar *progressbar.ProgressBar,
	limiter *rate.Limiter,
	mode string,
	total *atomic.Uint64,
) error {
	sink, err := writer.Open(path, false, o.logger)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	enum := generate.New(o.opts.Spec)
	if err := enum.SkipAhead(offset); err != nil {
		return err
	}

	quota := uint64(math.MaxUint64)
	if span.IsUint64() {
		quota = span.Uint64()
	}

	var count uint64
	for count < quota {
		if err := ctx.Err(); err != nil {
			if flushErr := sink.Flush(); flushErr != nil {
				return flushErr
			}
			return err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		word, ok := enum.Next()
		if !ok {
			break
		}
		if err := sink.WriteLine(o.opts.Prefix + word + o.opts.Suffix); err != nil {
			return err
		}
		count++
		total.Add(1)
		_ = bar.Add(1)
		o.collector.AddWords(mode, 1)
	}

	return sink.Flush()
}
