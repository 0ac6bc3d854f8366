package precision_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/decimal"
	"github.com/amazingrofa/geofac/precision"
)

func TestDigitsFor(t *testing.T) {
	n127, ok := new(big.Int).SetString("137524771864208156028430259349934309717", 10)
	require.True(t, ok)
	require.Equal(t, uint32(n127.BitLen())*4+precision.MinDigits, precision.DigitsFor(0, n127))

	// A configured floor above the computed rule wins.
	require.Equal(t, uint32(10000), precision.DigitsFor(10000, n127))
}

func TestNewDerivesConstants(t *testing.T) {
	n := big.NewInt(1073217479)
	pol, err := precision.New(0, n)
	require.NoError(t, err)
	require.True(t, pol.Digits >= 200)

	// ln(N) should round-trip through exp within the working precision.
	back := new(decimal.Decimal)
	_, err = pol.Ctx.Exp(back, pol.LnN)
	require.NoError(t, err)

	nDec := decimal.NewWithBigInt(new(big.Int).Set(n), 0)
	diff := new(decimal.Decimal)
	_, err = pol.Ctx.Sub(diff, back, nDec)
	require.NoError(t, err)

	tolerance := decimal.New(1, -int32(pol.Digits)+20)
	abs := new(decimal.Decimal)
	_, err = pol.Ctx.Abs(abs, diff)
	require.NoError(t, err)
	require.True(t, abs.Cmp(tolerance) <= 0, "exp(ln(N)) should round-trip to N: got %s", back)
}

func TestPrincipalIdempotent(t *testing.T) {
	n := big.NewInt(1073217479)
	pol, err := precision.New(0, n)
	require.NoError(t, err)

	theta := decimal.New(1234, -2) // 12.34 radians, well outside [-pi, pi]
	once := new(decimal.Decimal)
	_, err = pol.Principal(once, theta)
	require.NoError(t, err)

	twice := new(decimal.Decimal)
	_, err = pol.Principal(twice, once)
	require.NoError(t, err)

	require.Equal(t, 0, once.Cmp(twice))
	require.True(t, once.Cmp(pol.Pi) <= 0)
	negPi := new(decimal.Decimal)
	_, err = pol.Ctx.Neg(negPi, pol.Pi)
	require.NoError(t, err)
	require.True(t, once.Cmp(negPi) > 0)
}
