package engine

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/kernel"
	"github.com/amazingrofa/geofac/precision"
	"github.com/amazingrofa/geofac/sampler"
	"github.com/amazingrofa/geofac/snap"
)

// Factor attempts to factor n under cfg. It rejects n outside the
// operational gate before any expensive work, otherwise it drives the
// deterministic sampler/scheduler to completion, timeout, or exhaustion.
//
// A certified N mod d == 0 whose product disagrees with N is an
// arithmetic bug, not an algorithmic miss, and panics rather than
// populating Result: that failure mode cannot arise from correct code.
func Factor(n *big.Int, cfg Config) Result {
	return FactorContext(context.Background(), n, cfg)
}

// FactorContext is Factor with an explicit context, allowing callers to
// cancel a search in addition to the configured wall-clock budget.
func FactorContext(ctx context.Context, n *big.Int, cfg Config) Result {
	start := time.Now()

	if n == nil || n.Sign() <= 0 {
		return Result{Success: false, Reason: OutOfGate, CfgSnapshot: cfg}
	}
	if !inGate(n, cfg.AllowWhitelistedChallenge) {
		return Result{Success: false, Reason: OutOfGate, CfgSnapshot: cfg}
	}

	pol, err := precision.New(cfg.Precision, n)
	if err != nil {
		// Precision Policy is documented as total for positive N; this
		// can only happen for a caller contract violation already ruled
		// out above, so treat it defensively as the gate's own failure.
		return Result{Success: false, Reason: OutOfGate, CfgSnapshot: cfg}
	}

	sigma := decimalFromFloat(cfg.Sigma)
	var gateVal *decimal.Decimal
	if cfg.KernelVariant == kernel.Gaussian {
		gateVal = sigma
	}
	g, err := kernel.New(pol, cfg.KernelVariant, gateVal, cfg.J)
	if err != nil {
		return Result{Success: false, Reason: OutOfGate, CfgSnapshot: cfg}
	}

	sk := snap.New(pol, g, cfg.NewtonIterations)

	sched := &sampler.Scheduler{
		Policy:    pol,
		Gate:      g,
		Snap:      sk,
		N:         n,
		KLo:       decimalFromFloat(cfg.KLo),
		KHi:       decimalFromFloat(cfg.KHi),
		MSpan:     cfg.MSpan,
		Samples:   cfg.Samples,
		Threshold: decimalFromFloat(cfg.Threshold),
		Timeout:   cfg.SearchTimeout,
		Workers:   cfg.Workers,
	}

	out, err := sched.Run(ctx)
	duration := time.Since(start)
	if err != nil {
		panic(errors.Wrap(err, "engine: invariant violation during certification"))
	}

	if !out.Found {
		reason := NoFactorFound
		if out.Reason == sampler.Timeout {
			reason = SearchTimedOut
		}
		return Result{Success: false, Reason: reason, Duration: duration, CfgSnapshot: cfg}
	}

	return Result{
		Success:     true,
		P:           out.Pair.P,
		Q:           out.Pair.Q,
		Duration:    duration,
		CfgSnapshot: cfg,
	}
}

// decimalFromFloat converts a float64 Config field to a Decimal via its
// shortest round-tripping decimal string, avoiding binary-float artifacts
// in tuning parameters like sigma and threshold.
func decimalFromFloat(f float64) *decimal.Decimal {
	d := new(decimal.Decimal)
	if _, err := d.SetFloat64(f); err != nil {
		panic(errors.Wrap(err, "engine: invalid config constant"))
	}
	return d
}
