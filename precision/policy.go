// Package precision owns the arbitrary-precision context shared by every
// decimal stage of the factoring search: the kernel gate, the snap kernel,
// and the sampler all read from a single Policy rather than constructing
// their own decimal.Context. Certification works on big.Int values only.
package precision

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/amazingrofa/geofac/decimal"
)

// MinDigits is the floor added on top of bits(N)*digitsPerBit, absorbing
// error from the chain of ln/exp/sin evaluations a single search performs.
const MinDigits = 200

// digitsPerBit is the slope of the precision-vs-bit-length rule: a 127-bit
// N needs roughly 708 digits of working precision.
const digitsPerBit = 4

// Policy is the frozen precision context for one factor call: it owns the
// decimal.Context together with the transcendental constants (ln N, 2*pi,
// the golden ratio conjugate) every other component derives from it once
// and reuses for the lifetime of the call.
type Policy struct {
	Ctx    *decimal.Context
	Digits uint32

	LnN    *decimal.Decimal
	TwoPi  *decimal.Decimal
	Pi     *decimal.Decimal
	PhiInv *decimal.Decimal
}

// DigitsFor computes P = max(configured, bits(N)*4 + 200), the precision
// floor mandated for a given modulus size.
func DigitsFor(configured uint32, n *big.Int) uint32 {
	bits := uint32(n.BitLen())
	floor := bits*digitsPerBit + MinDigits
	if configured > floor {
		return configured
	}
	return floor
}

// New builds a Policy for n: a precision context at DigitsFor(configured,
// n) digits, half-to-even rounding, and the derived constants ln(n), 2*pi,
// pi, and the golden ratio conjugate computed once at that precision.
func New(configured uint32, n *big.Int) (*Policy, error) {
	if n.Sign() <= 0 {
		return nil, errors.New("precision: n must be positive")
	}
	digits := DigitsFor(configured, n)

	ctx := &decimal.Context{
		Precision:   digits,
		Rounding:    decimal.RoundHalfEven,
		MaxExponent: decimal.MaxExponent,
		MinExponent: decimal.MinExponent,
		Traps:       decimal.DefaultTraps,
	}

	nDec := decimal.NewWithBigInt(new(big.Int).Set(n), 0)

	lnN := new(decimal.Decimal)
	if _, err := ctx.Ln(lnN, nDec); err != nil {
		return nil, errors.Wrap(err, "precision: ln(N)")
	}

	pi := new(decimal.Decimal)
	if _, err := ctx.Pi(pi); err != nil {
		return nil, errors.Wrap(err, "precision: pi")
	}
	twoPi := new(decimal.Decimal)
	if _, err := ctx.Mul(twoPi, pi, decimal.New(2, 0)); err != nil {
		return nil, errors.Wrap(err, "precision: 2*pi")
	}

	phiInv := new(decimal.Decimal)
	if _, err := ctx.GoldenRatioConjugate(phiInv); err != nil {
		return nil, errors.Wrap(err, "precision: golden ratio conjugate")
	}

	return &Policy{
		Ctx:    ctx,
		Digits: digits,
		LnN:    lnN,
		TwoPi:  twoPi,
		Pi:     pi,
		PhiInv: phiInv,
	}, nil
}

// Principal reduces theta to its representative in [-pi, pi) modulo 2*pi,
// using the policy's precomputed twoPi.
func (p *Policy) Principal(out, theta *decimal.Decimal) (decimal.Condition, error) {
	return decimal.Principal(p.Ctx, out, theta, p.TwoPi)
}
