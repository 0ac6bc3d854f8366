// Copyright 2016 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package decimal

import (
	"math"

	"github.com/pkg/errors"
)

// Exp sets d = e**x using argument reduction by repeated halving followed by
// a Taylor series at the reduced, small-magnitude angle and repeated
// squaring back (e**x = (e**(x/2^k))**(2^k)). The extra working precision
// absorbs the error amplification from the k squarings.
func (c *Context) Exp(d, x *Decimal) (Condition, error) {
	if x.Sign() == 0 {
		d.Set(decimalOne)
		return 0, nil
	}
	if c.Precision == 0 {
		return 0, errors.New(errZeroPrecisionStr)
	}

	wp := c.Precision + 30
	nc := c.WithPrecision(wp)
	nc.Rounding = RoundHalfEven
	ed := NewErrDecimal(nc)

	reduced := new(Decimal).Set(x)
	bound := New(1, -1)
	abs := new(Decimal)
	k := 0
	for {
		ed.Abs(abs, reduced)
		if ed.Err != nil {
			return 0, ed.Err
		}
		if abs.Cmp(bound) <= 0 || k > 4000 {
			break
		}
		ed.Mul(reduced, reduced, decimalHalf)
		k++
	}

	sum := new(Decimal).Set(decimalOne)
	term := new(Decimal).Set(decimalOne)
	n := New(0, 0)
	threshold := New(1, -int32(wp))
	absTerm := new(Decimal)

	maxTerms := int(wp) + 50
	for i := 1; i <= maxTerms; i++ {
		ed.Add(n, n, decimalOne)
		ed.Mul(term, term, reduced)
		ed.Quo(term, term, n)
		ed.Add(sum, sum, term)
		if ed.Err != nil {
			return 0, ed.Err
		}
		ed.Abs(absTerm, term)
		if absTerm.Cmp(threshold) <= 0 {
			break
		}
	}

	for i := 0; i < k; i++ {
		ed.Mul(sum, sum, sum)
	}
	if ed.Err != nil {
		return 0, ed.Err
	}
	res, err := c.Round(d, sum)
	res |= Inexact
	return res, err
}

// Ln sets d to the natural log of x using Newton's method on f(y) = e**y -
// x, seeded from a float64 approximation and refined to full precision. The
// iteration y_{n+1} = y_n - 1 + x*e**(-y_n) converges quadratically, so a
// double-precision seed reaches any working precision in a handful of
// rounds.
func (c *Context) Ln(d, x *Decimal) (Condition, error) {
	if x.Sign() <= 0 {
		res := InvalidOperation
		return c.goError(res)
	}
	if x.Cmp(decimalOne) == 0 {
		d.Set(decimalZero)
		return 0, nil
	}

	wp := c.Precision + 30
	nc := c.WithPrecision(wp)
	nc.Rounding = RoundHalfEven
	ed := NewErrDecimal(nc)

	xf, err := x.Float64()
	if err != nil {
		return 0, errors.Wrap(err, "ln: seed")
	}
	y := new(Decimal)
	if _, err := y.SetFloat64(math.Log(xf)); err != nil {
		return 0, errors.Wrap(err, "ln: seed")
	}

	negY := new(Decimal)
	expNegY := new(Decimal)
	step := new(Decimal)

	for loop := nc.newLoop("ln", x, 4); ; {
		ed.Neg(negY, y)
		ed.Exp(expNegY, negY)
		ed.Mul(step, x, expNegY)
		ed.Sub(step, step, decimalOne)
		ed.Add(y, y, step)

		if ed.Err != nil {
			return 0, ed.Err
		}
		if done, err := loop.done(y); err != nil {
			return 0, err
		} else if done {
			break
		}
	}

	res, err := c.Round(d, y)
	res |= Inexact
	return res, err
}

// SinCos sets sin and cos to the sine and cosine of theta (in radians),
// sharing the argument reduction between them. The angle is halved until
// its magnitude is small, a Taylor series evaluates sine and cosine of the
// reduced angle, and the double-angle identities
//
//	sin(2x) = 2 sin(x) cos(x)
//	cos(2x) = cos(x)^2 - sin(x)^2
//
// restore the result at the original angle. This keeps the series short
// (and hence fast) regardless of how large theta or the working precision
// is, mirroring the range-reduction-then-recombine shape of Exp.
func (c *Context) SinCos(sin, cos, theta *Decimal) (Condition, error) {
	wp := c.Precision + 30
	nc := c.WithPrecision(wp)
	nc.Rounding = RoundHalfEven
	ed := NewErrDecimal(nc)

	x := new(Decimal).Set(theta)
	bound := New(1, -1)
	abs := new(Decimal)
	k := 0
	for {
		ed.Abs(abs, x)
		if ed.Err != nil {
			return 0, ed.Err
		}
		if abs.Cmp(bound) <= 0 || k > 4000 {
			break
		}
		ed.Mul(x, x, decimalHalf)
		k++
	}

	negX2 := new(Decimal)
	ed.Mul(negX2, x, x)
	ed.Neg(negX2, negX2)

	cosSum := new(Decimal).Set(decimalOne)
	sinSum := new(Decimal).Set(x)
	cosTerm := new(Decimal).Set(decimalOne)
	sinTerm := new(Decimal).Set(x)

	threshold := New(1, -int32(wp))
	absCos := new(Decimal)
	absSin := new(Decimal)
	denomCos := new(Decimal)
	denomSin := new(Decimal)

	maxTerms := int(wp) + 50
	for i := 1; i <= maxTerms; i++ {
		denomCos.SetCoefficient(int64(2*i-1) * int64(2*i))
		ed.Mul(cosTerm, cosTerm, negX2)
		ed.Quo(cosTerm, cosTerm, denomCos)
		ed.Add(cosSum, cosSum, cosTerm)

		denomSin.SetCoefficient(int64(2*i) * int64(2*i+1))
		ed.Mul(sinTerm, sinTerm, negX2)
		ed.Quo(sinTerm, sinTerm, denomSin)
		ed.Add(sinSum, sinSum, sinTerm)

		if ed.Err != nil {
			return 0, ed.Err
		}
		ed.Abs(absCos, cosTerm)
		ed.Abs(absSin, sinTerm)
		if absCos.Cmp(threshold) <= 0 && absSin.Cmp(threshold) <= 0 {
			break
		}
	}

	tmpSin := new(Decimal)
	tmpCos := new(Decimal)
	sq1 := new(Decimal)
	sq2 := new(Decimal)
	for i := 0; i < k; i++ {
		ed.Mul(tmpSin, sinSum, cosSum)
		ed.Mul(tmpSin, tmpSin, decimalTwo)
		ed.Mul(sq1, cosSum, cosSum)
		ed.Mul(sq2, sinSum, sinSum)
		ed.Sub(tmpCos, sq1, sq2)
		sinSum.Set(tmpSin)
		cosSum.Set(tmpCos)
	}
	if ed.Err != nil {
		return 0, ed.Err
	}

	if _, err := c.Round(sin, sinSum); err != nil {
		return 0, err
	}
	res, err := c.Round(cos, cosSum)
	return res, err
}

// Sin sets d to the sine of theta.
func (c *Context) Sin(d, theta *Decimal) (Condition, error) {
	cos := new(Decimal)
	return c.SinCos(d, cos, theta)
}

// Cos sets d to the cosine of theta.
func (c *Context) Cos(d, theta *Decimal) (Condition, error) {
	sin := new(Decimal)
	return c.SinCos(sin, d, theta)
}

// Pi sets d to the ratio of a circle's circumference to its diameter, using
// the Gauss-Legendre (Brent-Salamin) iteration. The iteration doubles its
// correct digits every round, so reaching hundreds of digits of precision
// costs only a handful of Sqrt calls.
func (c *Context) Pi(d *Decimal) (Condition, error) {
	wp := c.Precision + 30
	nc := c.WithPrecision(wp)
	nc.Rounding = RoundHalfEven
	ed := NewErrDecimal(nc)

	a := new(Decimal).Set(decimalOne)
	b := new(Decimal)
	ed.Sqrt(b, decimalHalf)
	t := New(25, -2)
	p := new(Decimal).Set(decimalOne)

	aNext := new(Decimal)
	bNext := new(Decimal)
	diff := new(Decimal)
	diffSq := new(Decimal)
	tmp := new(Decimal)

	for loop := nc.newLoop("pi", decimalOne, 2); ; {
		ed.Add(aNext, a, b)
		ed.Mul(aNext, aNext, decimalHalf)
		ed.Mul(bNext, a, b)
		ed.Sqrt(bNext, bNext)
		ed.Sub(diff, a, aNext)
		ed.Mul(diffSq, diff, diff)
		ed.Mul(tmp, p, diffSq)
		ed.Sub(t, t, tmp)
		ed.Mul(p, p, decimalTwo)

		a.Set(aNext)
		b.Set(bNext)

		if ed.Err != nil {
			return 0, ed.Err
		}
		if done, err := loop.done(a); err != nil {
			return 0, err
		} else if done {
			break
		}
	}

	sum := new(Decimal)
	ed.Add(sum, a, b)
	ed.Mul(sum, sum, sum)
	four := New(4, 0)
	denom := new(Decimal)
	ed.Mul(denom, four, t)
	ed.Quo(d, sum, denom)
	if ed.Err != nil {
		return 0, ed.Err
	}
	return c.Round(d, d)
}

// E sets d to Euler's number.
func (c *Context) E(d *Decimal) (Condition, error) {
	return c.Exp(d, decimalOne)
}

// GoldenRatioConjugate sets d to (sqrt(5)-1)/2, the reciprocal of the golden
// ratio and the step used by the Weyl low-discrepancy sampler.
func (c *Context) GoldenRatioConjugate(d *Decimal) (Condition, error) {
	wp := c.Precision + 10
	nc := c.WithPrecision(wp)
	nc.Rounding = RoundHalfEven
	ed := NewErrDecimal(nc)

	five := New(5, 0)
	s := new(Decimal)
	ed.Sqrt(s, five)
	ed.Sub(s, s, decimalOne)
	ed.Mul(s, s, decimalHalf)
	if ed.Err != nil {
		return 0, ed.Err
	}
	return c.Round(d, s)
}
