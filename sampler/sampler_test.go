package sampler_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/kernel"
	"github.com/amazingrofa/geofac/precision"
	"github.com/amazingrofa/geofac/sampler"
	"github.com/amazingrofa/geofac/snap"
)

func TestSequenceStaysInUnitInterval(t *testing.T) {
	pol, err := precision.New(60, big.NewInt(1073217479))
	require.NoError(t, err)

	seq := sampler.NewSequence(pol.Ctx, pol.PhiInv)
	zero := decimal.New(0, 0)
	one := decimal.New(1, 0)
	for i := 0; i < 200; i++ {
		u, err := seq.Next()
		require.NoError(t, err)
		require.True(t, u.Cmp(zero) >= 0)
		require.True(t, u.Cmp(one) < 0)
	}
}

func TestKAtInterpolatesRange(t *testing.T) {
	pol, err := precision.New(60, big.NewInt(1073217479))
	require.NoError(t, err)

	kLo, kHi := decimal.New(1000, 0), decimal.New(2000, 0)
	k, err := sampler.KAt(pol.Ctx, decimal.New(0, 0), kLo, kHi)
	require.NoError(t, err)
	require.Equal(t, 0, k.Cmp(kLo))

	half := decimal.New(5, -1)
	k, err = sampler.KAt(pol.Ctx, half, kLo, kHi)
	require.NoError(t, err)
	require.Equal(t, 0, k.Cmp(decimal.New(1500, 0)))
}

func TestSchedulerFindsKnownFactor(t *testing.T) {
	const n = 1073217479
	const p = 32749
	const q = 32771

	pol, err := precision.New(60, big.NewInt(n))
	require.NoError(t, err)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(2, -1), 0)
	require.NoError(t, err)
	sk := snap.New(pol, g, 2)

	// Choose k so that m=1 lands exactly on the angle that snaps to p:
	// theta = (2*ln(p) - lnN) / sigma, and k = 2*pi / theta.
	lnP := new(decimal.Decimal)
	_, err = pol.Ctx.Ln(lnP, decimal.New(p, 0))
	require.NoError(t, err)
	twoLnP := new(decimal.Decimal)
	_, err = pol.Ctx.Mul(twoLnP, lnP, decimal.New(2, 0))
	require.NoError(t, err)
	num := new(decimal.Decimal)
	_, err = pol.Ctx.Sub(num, twoLnP, pol.LnN)
	require.NoError(t, err)
	theta := new(decimal.Decimal)
	_, err = pol.Ctx.Quo(theta, num, g.Sigma)
	require.NoError(t, err)

	k := new(decimal.Decimal)
	_, err = pol.Ctx.Quo(k, pol.TwoPi, theta)
	require.NoError(t, err)

	sched := &sampler.Scheduler{
		Policy:    pol,
		Gate:      g,
		Snap:      sk,
		N:         big.NewInt(n),
		KLo:       k,
		KHi:       k,
		MSpan:     1,
		Samples:   1,
		Threshold: decimal.New(1, -6),
		Workers:   4,
	}

	out, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.True(t, out.Found, "expected scheduler to certify a factor")
	require.Equal(t, 0, out.Pair.P.Cmp(big.NewInt(p)))
	require.Equal(t, 0, out.Pair.Q.Cmp(big.NewInt(q)))
}

func TestSchedulerZeroSamplesIsNoFactorFound(t *testing.T) {
	pol, err := precision.New(60, big.NewInt(1073217479))
	require.NoError(t, err)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(2, -1), 0)
	require.NoError(t, err)
	sk := snap.New(pol, g, 0)

	sched := &sampler.Scheduler{
		Policy:    pol,
		Gate:      g,
		Snap:      sk,
		N:         big.NewInt(1073217479),
		KLo:       decimal.New(1000, 0),
		KHi:       decimal.New(2000, 0),
		MSpan:     0,
		Samples:   0,
		Threshold: decimal.New(1, -6),
		Workers:   1,
	}
	out, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.False(t, out.Found)
	require.Equal(t, sampler.NoFactorFound, out.Reason)
}

func TestSchedulerTimesOutImmediately(t *testing.T) {
	pol, err := precision.New(60, big.NewInt(1152921470247108503))
	require.NoError(t, err)
	g, err := kernel.New(pol, kernel.Gaussian, decimal.New(2, -1), 0)
	require.NoError(t, err)
	sk := snap.New(pol, g, 2)

	sched := &sampler.Scheduler{
		Policy:    pol,
		Gate:      g,
		Snap:      sk,
		N:         big.NewInt(1152921470247108503),
		KLo:       decimal.New(1000, 0),
		KHi:       decimal.New(2000, 0),
		MSpan:     5,
		Samples:   1 << 30,
		Threshold: decimal.New(1, -6),
		Workers:   4,
		Timeout:   1,
	}
	time.Sleep(time.Millisecond)
	out, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.False(t, out.Found)
	require.Equal(t, sampler.Timeout, out.Reason)
}
