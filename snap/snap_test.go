package snap_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/kernel"
	"github.com/amazingrofa/geofac/precision"
	"github.com/amazingrofa/geofac/snap"
)

func testSetup(t *testing.T, n int64) (*precision.Policy, *kernel.Gate) {
	t.Helper()
	pol, err := precision.New(0, big.NewInt(n))
	require.NoError(t, err)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(5, -1), 0)
	require.NoError(t, err)
	return pol, g
}

// TestSnapRecoversKnownFactor feeds the angle that corresponds exactly to
// the known factor p of N = 1073217479 = 32749 * 32771 and checks that
// snapping recovers p (or a neighbor of it).
func TestSnapRecoversKnownFactor(t *testing.T) {
	const n = 1073217479
	const p = 32749
	pol, g := testSetup(t, n)
	k := snap.New(pol, g, 2)

	lnP := new(decimal.Decimal)
	_, err := pol.Ctx.Ln(lnP, decimal.New(p, 0))
	require.NoError(t, err)

	// theta is chosen so that deltaPhi = theta*sigma makes (lnN+deltaPhi)/2
	// equal exactly to ln(p): theta = (2*ln(p) - lnN) / sigma.
	twoLnP := new(decimal.Decimal)
	_, err = pol.Ctx.Mul(twoLnP, lnP, decimal.New(2, 0))
	require.NoError(t, err)
	num := new(decimal.Decimal)
	_, err = pol.Ctx.Sub(num, twoLnP, pol.LnN)
	require.NoError(t, err)
	theta := new(decimal.Decimal)
	_, err = pol.Ctx.Quo(theta, num, g.Sigma)
	require.NoError(t, err)

	cand, err := k.Snap(theta)
	require.NoError(t, err)

	found := false
	for _, v := range cand.Neighborhood {
		if v.Cmp(big.NewInt(p)) == 0 {
			found = true
		}
	}
	require.True(t, found, "expected %d in neighborhood of %s", p, cand.P0)
}

func TestSnapNeighborhoodIsConsecutive(t *testing.T) {
	pol, g := testSetup(t, 1073217479)
	k := snap.New(pol, g, 0)

	cand, err := k.Snap(decimal.New(3, -1))
	require.NoError(t, err)

	one := big.NewInt(1)
	require.Equal(t, 0, new(big.Int).Add(cand.Neighborhood[0], one).Cmp(cand.Neighborhood[1]))
	require.Equal(t, 0, new(big.Int).Add(cand.Neighborhood[1], one).Cmp(cand.Neighborhood[2]))
	require.Equal(t, 0, cand.P0.Cmp(cand.Neighborhood[1]))
}
