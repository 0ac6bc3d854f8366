package kernel_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/kernel"
	"github.com/amazingrofa/geofac/precision"
)

func testPolicy(t *testing.T) *precision.Policy {
	t.Helper()
	pol, err := precision.New(60, big.NewInt(1073217479))
	require.NoError(t, err)
	return pol
}

func TestGaussianGateAtZero(t *testing.T) {
	pol := testPolicy(t)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(5, -1), 0)
	require.NoError(t, err)

	amp, err := g.Amplitude(decimal.New(0, 0))
	require.NoError(t, err)
	require.Equal(t, 0, amp.Cmp(decimal.New(1, 0)))
}

func TestGaussianGateClamped(t *testing.T) {
	pol := testPolicy(t)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(5, -1), 0)
	require.NoError(t, err)

	for _, theta := range []*decimal.Decimal{
		decimal.New(0, 0),
		decimal.New(1, 0),
		decimal.New(31415, -4),
		decimal.New(-31415, -4),
	} {
		amp, err := g.Amplitude(theta)
		require.NoError(t, err)
		require.True(t, amp.Sign() >= 0)
		require.True(t, amp.Cmp(decimal.New(1, 0)) <= 0)
	}
}

func TestGaussianGatePeriodic(t *testing.T) {
	pol := testPolicy(t)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(5, -1), 0)
	require.NoError(t, err)

	theta := decimal.New(7, -1)
	shifted := new(decimal.Decimal)
	_, err = pol.Ctx.Add(shifted, theta, pol.TwoPi)
	require.NoError(t, err)

	amp1, err := g.Amplitude(theta)
	require.NoError(t, err)
	amp2, err := g.Amplitude(shifted)
	require.NoError(t, err)

	diff := new(decimal.Decimal)
	_, err = pol.Ctx.Sub(diff, amp1, amp2)
	require.NoError(t, err)
	abs := new(decimal.Decimal)
	_, err = pol.Ctx.Abs(abs, diff)
	require.NoError(t, err)
	require.True(t, abs.Cmp(decimal.New(1, -int32(pol.Digits)+20)) <= 0)
}

func TestDirichletGateSingularityGuard(t *testing.T) {
	pol := testPolicy(t)
	g, err := kernel.New(pol, kernel.Dirichlet, nil, 5)
	require.NoError(t, err)

	amp, err := g.Amplitude(decimal.New(0, 0))
	require.NoError(t, err)
	require.Equal(t, 0, amp.Cmp(decimal.New(1, 0)))

	shifted := new(decimal.Decimal)
	_, err = pol.Ctx.Add(shifted, decimal.New(0, 0), pol.TwoPi)
	require.NoError(t, err)
	amp2, err := g.Amplitude(shifted)
	require.NoError(t, err)
	require.Equal(t, 0, amp2.Cmp(decimal.New(1, 0)))
}

func TestDirichletGateClamped(t *testing.T) {
	pol := testPolicy(t)
	g, err := kernel.New(pol, kernel.Dirichlet, nil, 3)
	require.NoError(t, err)

	for _, theta := range []*decimal.Decimal{
		decimal.New(1, 0),
		decimal.New(2, 0),
		decimal.New(31, -1),
	} {
		amp, err := g.Amplitude(theta)
		require.NoError(t, err)
		require.True(t, amp.Sign() >= 0)
		require.True(t, amp.Cmp(decimal.New(1, 0)) <= 0)
	}
}
