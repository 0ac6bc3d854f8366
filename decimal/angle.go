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

// Principal reduces theta to its representative in [-pi, pi) modulo twoPi,
// writing the result to out. twoPi must already be computed by the caller
// at the working precision (Context.Pi, doubled) since callers typically
// derive it once per run and reuse it across many reductions.
func Principal(c *Context, out, theta, twoPi *Decimal) (Condition, error) {
	ed := NewErrDecimal(c)

	ratio := new(Decimal)
	ed.Quo(ratio, theta, twoPi)
	ed.Add(ratio, ratio, decimalHalf)
	if ed.Err != nil {
		return ed.Flags, ed.Err
	}

	n := floorDecimal(ratio)
	shift := new(Decimal)
	ed.Mul(shift, n, twoPi)
	ed.Sub(out, theta, shift)
	if ed.Err != nil {
		return ed.Flags, ed.Err
	}
	return c.Round(out, out)
}

// floorDecimal returns the greatest integer Decimal <= x.
func floorDecimal(x *Decimal) *Decimal {
	integ, frac := new(Decimal), new(Decimal)
	x.Modf(integ, frac)
	if frac.Sign() < 0 {
		integ.Coeff.Sub(&integ.Coeff, bigOne)
	}
	return integ
}
