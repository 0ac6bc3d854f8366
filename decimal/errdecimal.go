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

// ErrDecimal performs a sequence of operations against a fixed Context,
// short-circuiting once the first error occurs. Designed for long chains of
// arithmetic with a single error check at the end.
type ErrDecimal struct {
	Ctx   *Context
	Flags Condition
	Err   error
}

// NewErrDecimal returns an ErrDecimal bound to c.
func NewErrDecimal(c *Context) *ErrDecimal {
	return &ErrDecimal{Ctx: c}
}

func (e *ErrDecimal) do(f func() (Condition, error)) {
	if e.Err != nil {
		return
	}
	var res Condition
	res, e.Err = f()
	e.Flags |= res
}

// Add performs d.Add(x, y).
func (e *ErrDecimal) Add(d, x, y *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Add(d, x, y) })
}

// Sub performs d.Sub(x, y).
func (e *ErrDecimal) Sub(d, x, y *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Sub(d, x, y) })
}

// Abs performs d.Abs(x).
func (e *ErrDecimal) Abs(d, x *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Abs(d, x) })
}

// Neg performs d.Neg(x).
func (e *ErrDecimal) Neg(d, x *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Neg(d, x) })
}

// Mul performs d.Mul(x, y).
func (e *ErrDecimal) Mul(d, x, y *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Mul(d, x, y) })
}

// Quo performs d.Quo(x, y).
func (e *ErrDecimal) Quo(d, x, y *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Quo(d, x, y) })
}

// Sqrt performs d.Sqrt(x).
func (e *ErrDecimal) Sqrt(d, x *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Sqrt(d, x) })
}

// Exp performs d.Exp(x).
func (e *ErrDecimal) Exp(d, x *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Exp(d, x) })
}

// Ln performs d.Ln(x).
func (e *ErrDecimal) Ln(d, x *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Ln(d, x) })
}

// Sin performs d.Sin(theta).
func (e *ErrDecimal) Sin(d, theta *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Sin(d, theta) })
}

// Cos performs d.Cos(theta).
func (e *ErrDecimal) Cos(d, theta *Decimal) {
	e.do(func() (Condition, error) { return e.Ctx.Cos(d, theta) })
}
