// Package sampler implements the deterministic low-discrepancy traversal
// of the (k, m) parameter space and the parallel m-scan that evaluates
// each point against the kernel gate and snap kernel.
package sampler

import (
	"github.com/pkg/errors"

	"github.com/amazingrofa/geofac/decimal"
)

// Sequence is the additive-recurrence (Weyl) generator u_{n+1} =
// frac(u_n + phiInv), started at u_0 = 0.
type Sequence struct {
	ctx    *decimal.Context
	phiInv *decimal.Decimal
	u      *decimal.Decimal
}

// NewSequence builds a Sequence bound to ctx, using phiInv as the
// irrational step.
func NewSequence(ctx *decimal.Context, phiInv *decimal.Decimal) *Sequence {
	return &Sequence{ctx: ctx, phiInv: phiInv, u: decimal.New(0, 0)}
}

// Next advances the sequence and returns the new u_n in [0, 1).
func (s *Sequence) Next() (*decimal.Decimal, error) {
	sum := new(decimal.Decimal)
	if _, err := s.ctx.Add(sum, s.u, s.phiInv); err != nil {
		return nil, errors.Wrap(err, "sampler: advance sequence")
	}
	integ, frac := new(decimal.Decimal), new(decimal.Decimal)
	sum.Modf(integ, frac)
	if frac.Sign() < 0 {
		// Modf's fractional part carries the sign of sum; frac(x) is
		// conventionally non-negative, so add back 1 when sum is negative
		// (never the case here since u and phiInv are both in [0,1), but
		// kept for robustness against future callers).
		if _, err := s.ctx.Add(frac, frac, decimal.New(1, 0)); err != nil {
			return nil, errors.Wrap(err, "sampler: normalize fractional part")
		}
	}
	s.u = frac
	return frac, nil
}

// KAt maps u in [0,1) to k = kLo + u*(kHi-kLo).
func KAt(ctx *decimal.Context, u, kLo, kHi *decimal.Decimal) (*decimal.Decimal, error) {
	span := new(decimal.Decimal)
	if _, err := ctx.Sub(span, kHi, kLo); err != nil {
		return nil, errors.Wrap(err, "sampler: k span")
	}
	scaled := new(decimal.Decimal)
	if _, err := ctx.Mul(scaled, u, span); err != nil {
		return nil, errors.Wrap(err, "sampler: k scale")
	}
	k := new(decimal.Decimal)
	if _, err := ctx.Add(k, kLo, scaled); err != nil {
		return nil, errors.Wrap(err, "sampler: k offset")
	}
	return k, nil
}

// ThetaAt computes theta = 2*pi*m/k at the policy's working precision.
func ThetaAt(ctx *decimal.Context, twoPi, k *decimal.Decimal, m int64) (*decimal.Decimal, error) {
	numerator := new(decimal.Decimal)
	if _, err := ctx.Mul(numerator, twoPi, decimal.New(m, 0)); err != nil {
		return nil, errors.Wrap(err, "sampler: theta numerator")
	}
	theta := new(decimal.Decimal)
	if _, err := ctx.Quo(theta, numerator, k); err != nil {
		return nil, errors.Wrap(err, "sampler: theta")
	}
	return theta, nil
}
