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

import "math/big"

var (
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)
)

var (
	decimalZero = New(0, 0)
	decimalOne  = New(1, 0)
	decimalTwo  = New(2, 0)
	decimalHalf = New(5, -1)
)

// tableExp10 returns 10^x for x >= 0, computed with big.Int.Exp. tmp is
// unused.
func tableExp10(x int64, tmp *big.Int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(x), nil)
}
