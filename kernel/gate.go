// Package kernel evaluates the smooth amplitude gate that decides, per
// angle, whether a sampled point is worth snapping to an integer
// candidate. Two variants are supported: a singularity-free Gaussian gate
// (the default) and a normalized Dirichlet gate kept for compatibility
// with legacy tuning.
package kernel

import (
	"github.com/pkg/errors"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/precision"
)

// Variant selects which amplitude gate a Gate evaluates.
type Variant int

const (
	// Gaussian is the default, singularity-free amplitude window.
	Gaussian Variant = iota
	// Dirichlet is the legacy normalized Dirichlet kernel.
	Dirichlet
)

// Gate evaluates the amplitude A(theta) for a fixed configuration: sigma
// for the Gaussian variant, J for the Dirichlet variant.
type Gate struct {
	Policy  *precision.Policy
	Variant Variant
	Sigma   *decimal.Decimal
	J       int

	twoJPlus1 *decimal.Decimal
	epsilon   *decimal.Decimal
}

// New builds a Gate bound to pol. sigma is used only by the Gaussian
// variant; j is used only by the Dirichlet variant.
func New(pol *precision.Policy, variant Variant, sigma *decimal.Decimal, j int) (*Gate, error) {
	if variant == Gaussian && (sigma == nil || sigma.Sign() <= 0) {
		return nil, errors.New("kernel: sigma must be positive for the Gaussian gate")
	}
	if variant == Dirichlet && j <= 0 {
		return nil, errors.New("kernel: j must be positive for the Dirichlet gate")
	}

	g := &Gate{Policy: pol, Variant: variant, Sigma: sigma, J: j}
	if variant == Dirichlet {
		g.twoJPlus1 = decimal.New(int64(2*j+1), 0)

		// epsilon = 10^(-max(12, P/2)), the Dirichlet singularity guard
		// threshold scaled to the working precision.
		half := int32(pol.Digits / 2)
		exp := int32(-12)
		if half > 12 {
			exp = -half
		}
		g.epsilon = decimal.New(1, exp)
	}
	return g, nil
}

// Amplitude returns A(theta) in [0, 1]; the Gaussian variant is never 0.
func (g *Gate) Amplitude(theta *decimal.Decimal) (*decimal.Decimal, error) {
	switch g.Variant {
	case Gaussian:
		return g.gaussian(theta)
	case Dirichlet:
		return g.dirichlet(theta)
	default:
		return nil, errors.Errorf("kernel: unknown variant %d", g.Variant)
	}
}

// gaussian computes exp(-principal(theta)^2 / (2*sigma^2)).
func (g *Gate) gaussian(theta *decimal.Decimal) (*decimal.Decimal, error) {
	ctx := g.Policy.Ctx
	ed := decimal.NewErrDecimal(ctx)

	p := new(decimal.Decimal)
	if _, err := g.Policy.Principal(p, theta); err != nil {
		return nil, errors.Wrap(err, "kernel: principal angle")
	}

	p2 := new(decimal.Decimal)
	ed.Mul(p2, p, p)

	sigma2 := new(decimal.Decimal)
	ed.Mul(sigma2, g.Sigma, g.Sigma)
	denom := new(decimal.Decimal)
	ed.Mul(denom, sigma2, decimal.New(2, 0))

	ratio := new(decimal.Decimal)
	ed.Quo(ratio, p2, denom)
	ed.Neg(ratio, ratio)

	amp := new(decimal.Decimal)
	ed.Exp(amp, ratio)
	if ed.Err != nil {
		return nil, errors.Wrap(ed.Err, "kernel: gaussian gate")
	}
	return amp, nil
}

// dirichlet computes |sin((2J+1)*theta/2) / ((2J+1)*sin(theta/2))|, guarded
// against the removable singularity at theta = 2*pi*Z.
func (g *Gate) dirichlet(theta *decimal.Decimal) (*decimal.Decimal, error) {
	ctx := g.Policy.Ctx
	ed := decimal.NewErrDecimal(ctx)

	half := new(decimal.Decimal)
	ed.Mul(half, theta, decimal.New(5, -1))

	sinHalf := new(decimal.Decimal)
	ed.Sin(sinHalf, half)
	if ed.Err != nil {
		return nil, errors.Wrap(ed.Err, "kernel: dirichlet gate")
	}

	absSinHalf := new(decimal.Decimal)
	if _, err := ctx.Abs(absSinHalf, sinHalf); err != nil {
		return nil, errors.Wrap(err, "kernel: dirichlet gate")
	}
	if absSinHalf.Cmp(g.epsilon) < 0 {
		return decimal.New(1, 0), nil
	}

	numArg := new(decimal.Decimal)
	ed.Mul(numArg, g.twoJPlus1, half)
	numerator := new(decimal.Decimal)
	ed.Sin(numerator, numArg)

	denominator := new(decimal.Decimal)
	ed.Mul(denominator, g.twoJPlus1, sinHalf)

	amp := new(decimal.Decimal)
	ed.Quo(amp, numerator, denominator)
	if ed.Err != nil {
		return nil, errors.Wrap(ed.Err, "kernel: dirichlet gate")
	}

	if _, err := ctx.Abs(amp, amp); err != nil {
		return nil, errors.Wrap(err, "kernel: dirichlet gate")
	}
	one := decimal.New(1, 0)
	if amp.Cmp(one) > 0 {
		amp = one
	}
	return amp, nil
}

// SnapWeight returns the weight applied to principal(theta) when deriving
// the snap kernel's phase correction: sigma for the Gaussian variant, the
// first-order Dirichlet correction 1/(2J+1) otherwise.
func (g *Gate) SnapWeight() (*decimal.Decimal, error) {
	if g.Variant == Gaussian {
		return g.Sigma, nil
	}
	out := new(decimal.Decimal)
	if _, err := g.Policy.Ctx.Quo(out, decimal.New(1, 0), g.twoJPlus1); err != nil {
		return nil, errors.Wrap(err, "kernel: dirichlet snap weight")
	}
	return out, nil
}

// StableAt reports whether theta's amplitude survives the optional
// stability check: A(theta +/- epsilonStab) both exceed 0.9*threshold,
// with epsilonStab = 10^(-P/4).
func (g *Gate) StableAt(theta, threshold *decimal.Decimal) (bool, error) {
	ctx := g.Policy.Ctx
	ed := decimal.NewErrDecimal(ctx)

	epsStab := decimal.New(1, -int32(g.Policy.Digits/4))
	nineTenths := decimal.New(9, -1)
	bound := new(decimal.Decimal)
	ed.Mul(bound, threshold, nineTenths)
	if ed.Err != nil {
		return false, errors.Wrap(ed.Err, "kernel: stability check")
	}

	plus := new(decimal.Decimal)
	ed.Add(plus, theta, epsStab)
	minus := new(decimal.Decimal)
	ed.Sub(minus, theta, epsStab)
	if ed.Err != nil {
		return false, errors.Wrap(ed.Err, "kernel: stability check")
	}

	ampPlus, err := g.Amplitude(plus)
	if err != nil {
		return false, err
	}
	ampMinus, err := g.Amplitude(minus)
	if err != nil {
		return false, err
	}
	return ampPlus.Cmp(bound) > 0 && ampMinus.Cmp(bound) > 0, nil
}
