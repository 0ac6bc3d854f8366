// Package snap maps an accepted kernel angle to an integer candidate and
// its certification neighborhood, with optional Newton refinement against
// a logarithmic residual.
package snap

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/kernel"
	"github.com/amazingrofa/geofac/precision"
)

// Kernel converts (lnN, theta) pairs into integer candidates for a fixed
// policy and gate.
type Kernel struct {
	Policy           *precision.Policy
	Gate             *kernel.Gate
	NewtonIterations int
}

// New builds a snap Kernel. newtonIterations is clamped to [0,3] per the
// refinement contract.
func New(pol *precision.Policy, g *kernel.Gate, newtonIterations int) *Kernel {
	if newtonIterations < 0 {
		newtonIterations = 0
	}
	if newtonIterations > 3 {
		newtonIterations = 3
	}
	return &Kernel{Policy: pol, Gate: g, NewtonIterations: newtonIterations}
}

// Candidate is a snapped integer p0 together with the {-1,0,+1}
// neighborhood certification will test.
type Candidate struct {
	P0           *big.Int
	Neighborhood [3]*big.Int
}

// Snap computes p_hat = exp((lnN + deltaPhi)/2), p0 = round_half_up(p_hat),
// optionally Newton-refines p0 against the logarithmic residual, and
// returns p0 with its {-1,0,+1} neighborhood.
func (k *Kernel) Snap(theta *decimal.Decimal) (*Candidate, error) {
	ctx := k.Policy.Ctx
	ed := decimal.NewErrDecimal(ctx)

	principal := new(decimal.Decimal)
	if _, err := k.Policy.Principal(principal, theta); err != nil {
		return nil, errors.Wrap(err, "snap: principal angle")
	}

	weight, err := k.Gate.SnapWeight()
	if err != nil {
		return nil, err
	}

	deltaPhi := new(decimal.Decimal)
	ed.Mul(deltaPhi, principal, weight)

	target := new(decimal.Decimal)
	ed.Add(target, k.Policy.LnN, deltaPhi)
	ed.Mul(target, target, decimal.New(5, -1))

	pHat := new(decimal.Decimal)
	ed.Exp(pHat, target)
	if ed.Err != nil {
		return nil, errors.Wrap(ed.Err, "snap: p_hat")
	}

	p0 := roundHalfUpToInt(pHat)

	if k.NewtonIterations > 0 {
		refined, ok := k.refine(target, p0)
		if ok {
			p0 = refined
		}
	}

	one := big.NewInt(1)
	return &Candidate{
		P0: p0,
		Neighborhood: [3]*big.Int{
			new(big.Int).Sub(p0, one),
			new(big.Int).Set(p0),
			new(big.Int).Add(p0, one),
		},
	}, nil
}

// refine applies the Newton iteration p_{i+1} = p_i - p_i*(ln(p_i) -
// target), stopping early once |ln(p) - target| < 10^(-P/2) or after
// NewtonIterations rounds. It reports ok=false (reverting to the
// pre-refinement candidate) if any iterate is <= 1.
func (k *Kernel) refine(target *decimal.Decimal, p0 *big.Int) (*big.Int, bool) {
	ctx := k.Policy.Ctx
	ed := decimal.NewErrDecimal(ctx)

	p := decimal.NewWithBigInt(new(big.Int).Set(p0), 0)
	stopThreshold := decimal.New(1, -int32(k.Policy.Digits/2))

	for i := 0; i < k.NewtonIterations; i++ {
		if p.Cmp(decimal.New(1, 0)) <= 0 {
			return nil, false
		}

		lnP := new(decimal.Decimal)
		ed.Ln(lnP, p)

		residual := new(decimal.Decimal)
		ed.Sub(residual, lnP, target)
		if ed.Err != nil {
			return nil, false
		}

		absResidual := new(decimal.Decimal)
		ed.Abs(absResidual, residual)
		if absResidual.Cmp(stopThreshold) < 0 {
			break
		}

		step := new(decimal.Decimal)
		ed.Mul(step, p, residual)
		next := new(decimal.Decimal)
		ed.Sub(next, p, step)
		if ed.Err != nil {
			return nil, false
		}
		if next.Cmp(decimal.New(1, 0)) <= 0 {
			return nil, false
		}
		p = next
	}

	return roundHalfUpToInt(p), true
}

// roundHalfUpToInt rounds x to the nearest integer, ties rounding away from
// zero, and returns the result as a big.Int.
//
// Context.Round rounds to a fixed number of *significant digits*, not
// decimal places, so it cannot integralize p_hat: Exp returns p_hat with
// exactly Policy.Digits significant figures already, so rounding to
// Policy.Digits digits is a no-op and the fractional part survives. Modf
// splits the value at the decimal point directly, independent of how many
// significant digits it carries, so it integralizes regardless of scale.
func roundHalfUpToInt(x *decimal.Decimal) *big.Int {
	integ, frac := new(decimal.Decimal), new(decimal.Decimal)
	x.Modf(integ, frac)

	v := new(big.Int).Set(&integ.Coeff)
	if integ.Exponent > 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(integ.Exponent)), nil)
		v.Mul(v, scale)
	}
	if frac.Sign() == 0 {
		return v
	}

	absFrac := decimal.NewWithBigInt(new(big.Int).Abs(&frac.Coeff), frac.Exponent)
	if absFrac.Cmp(decimal.New(5, -1)) >= 0 {
		if x.Sign() >= 0 {
			v.Add(v, big.NewInt(1))
		} else {
			v.Sub(v, big.NewInt(1))
		}
	}
	return v
}
