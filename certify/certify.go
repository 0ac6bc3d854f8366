// Package certify applies the one arithmetic predicate GRFC allows outside
// geometry: exact divisibility. It turns a snapped neighborhood into a
// verified factor pair or nothing, and never widens the search.
package certify

import (
	"math/big"

	"github.com/pkg/errors"
)

// Pair is a certified, ordered factorization of N: p <= q and p*q == N.
type Pair struct {
	P *big.Int
	Q *big.Int
}

// Neighborhood tests each candidate in turn for exact divisibility into n,
// skipping any d <= 1 or d >= n. It returns the first certified pair found,
// or ok=false if none of the candidates divide n.
//
// A successful N mod d == 0 that nonetheless fails p*q == N is an
// arithmetic bug, not an algorithmic miss, and is reported as a fatal
// error rather than folded into the negative result.
func Neighborhood(n *big.Int, candidates [3]*big.Int) (Pair, bool, error) {
	one := big.NewInt(1)
	for _, d := range candidates {
		if d == nil || d.Cmp(one) <= 0 || d.Cmp(n) >= 0 {
			continue
		}

		rem := new(big.Int)
		q, _ := new(big.Int).DivMod(n, d, rem)
		if rem.Sign() != 0 {
			continue
		}

		product := new(big.Int).Mul(d, q)
		if product.Cmp(n) != 0 {
			return Pair{}, false, errors.Errorf(
				"certify: invariant violation: %s mod %s == 0 but %s * %s != %s", n, d, d, q, n)
		}

		p, q := d, q
		if p.Cmp(q) > 0 {
			p, q = q, p
		}
		return Pair{P: new(big.Int).Set(p), Q: new(big.Int).Set(q)}, true, nil
	}
	return Pair{}, false, nil
}
