package sampler

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/amazingrofa/geofac/certify"
	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/kernel"
	"github.com/amazingrofa/geofac/precision"
	"github.com/amazingrofa/geofac/snap"
)

// Reason names why a Scheduler run produced no certified factor.
type Reason string

const (
	// NoFactorFound means the configured sample budget was exhausted
	// without a certified candidate.
	NoFactorFound Reason = "NO_FACTOR_FOUND"
	// Timeout means the wall-clock deadline elapsed before the sample
	// budget was exhausted.
	Timeout Reason = "TIMEOUT"
)

// Outcome is the result of one Scheduler.Run call.
type Outcome struct {
	Found   bool
	Pair    certify.Pair
	Reason  Reason
	Samples int64
}

// Scheduler drives the outer k-loop and the inner parallel m-scan.
type Scheduler struct {
	Policy *precision.Policy
	Gate   *kernel.Gate
	Snap   *snap.Kernel
	N      *big.Int

	KLo, KHi  *decimal.Decimal
	MSpan     int64
	Samples   int64
	Threshold *decimal.Decimal
	Timeout   time.Duration
	Workers   int

	// OnProgress is invoked at fixed percentage boundaries of the sample
	// budget. It is an observer hook, not a correctness contract, and may
	// be nil.
	OnProgress func(percent int)
}

// Run executes the search. The outer loop over k is strictly sequential;
// for each k the inner m sweep is fanned out to a worker pool. The first
// worker to certify a factor installs it into a single-writer result
// cell; all workers poll the cell before starting a new m and abandon
// their work once it is set.
func (s *Scheduler) Run(ctx context.Context) (Outcome, error) {
	if s.Samples <= 0 {
		return Outcome{Reason: NoFactorFound}, nil
	}

	workers := s.Workers
	if workers <= 0 {
		workers = 1
	}

	var deadline time.Time
	hasDeadline := s.Timeout > 0
	if hasDeadline {
		deadline = time.Now().Add(s.Timeout)
	}

	seq := NewSequence(s.Policy.Ctx, s.Policy.PhiInv)

	var resultCell atomic.Pointer[certify.Pair]
	var firstErr atomic.Pointer[error]

	lastPercent := -1
	for n := int64(0); n < s.Samples; n++ {
		if hasDeadline && !time.Now().Before(deadline) {
			return Outcome{Reason: Timeout, Samples: n}, nil
		}
		select {
		case <-ctx.Done():
			return Outcome{Reason: Timeout, Samples: n}, nil
		default:
		}

		u, err := seq.Next()
		if err != nil {
			return Outcome{}, err
		}
		k, err := KAt(s.Policy.Ctx, u, s.KLo, s.KHi)
		if err != nil {
			return Outcome{}, err
		}

		s.scanM(k, &resultCell, &firstErr, workers)

		if errp := firstErr.Load(); errp != nil {
			return Outcome{}, *errp
		}
		if pair := resultCell.Load(); pair != nil {
			return Outcome{Found: true, Pair: *pair, Samples: n + 1}, nil
		}

		if s.OnProgress != nil {
			percent := int((n + 1) * 100 / s.Samples)
			if percent != lastPercent {
				lastPercent = percent
				s.OnProgress(percent)
			}
		}
	}

	return Outcome{Reason: NoFactorFound, Samples: s.Samples}, nil
}

// scanM fans the inner m sweep [-MSpan, MSpan] out to a bounded worker
// pool for a fixed k, short-circuiting once resultCell is set.
func (s *Scheduler) scanM(k *decimal.Decimal, resultCell *atomic.Pointer[certify.Pair], firstErr *atomic.Pointer[error], workers int) {
	total := 2*s.MSpan + 1
	jobs := make(chan int64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if resultCell.Load() != nil {
					continue
				}
				s.evaluate(k, m, resultCell, firstErr)
			}
		}()
	}

	for i := int64(0); i < total; i++ {
		if resultCell.Load() != nil {
			break
		}
		jobs <- i - s.MSpan
	}
	close(jobs)
	wg.Wait()
}

// evaluate tests a single (k, m) point: compute theta, evaluate the
// kernel gate, and on acceptance snap and certify.
func (s *Scheduler) evaluate(k *decimal.Decimal, m int64, resultCell *atomic.Pointer[certify.Pair], firstErr *atomic.Pointer[error]) {
	theta, err := ThetaAt(s.Policy.Ctx, s.Policy.TwoPi, k, m)
	if err != nil {
		storeErr(firstErr, err)
		return
	}

	amp, err := s.Gate.Amplitude(theta)
	if err != nil {
		storeErr(firstErr, err)
		return
	}
	if amp.Cmp(s.Threshold) <= 0 {
		return
	}

	cand, err := s.Snap.Snap(theta)
	if err != nil {
		// A non-positive argument to ln during refinement is a local
		// numerical degeneracy: skip this sample, don't fail the call.
		return
	}

	pair, ok, err := certify.Neighborhood(s.N, cand.Neighborhood)
	if err != nil {
		storeErr(firstErr, errors.Wrap(err, "sampler: certification"))
		return
	}
	if !ok {
		return
	}

	resultCell.CompareAndSwap(nil, &pair)
}

func storeErr(cell *atomic.Pointer[error], err error) {
	cell.CompareAndSwap(nil, &err)
}
