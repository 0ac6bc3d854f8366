package certify_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/certify"
)

func neighborhoodOf(p int64) [3]*big.Int {
	one := big.NewInt(1)
	center := big.NewInt(p)
	return [3]*big.Int{
		new(big.Int).Sub(center, one),
		center,
		new(big.Int).Add(center, one),
	}
}

func TestNeighborhoodCertifiesKnownFactor(t *testing.T) {
	n := big.NewInt(1073217479)
	pair, ok, err := certify.Neighborhood(n, neighborhoodOf(32749))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, pair.P.Cmp(big.NewInt(32749)))
	require.Equal(t, 0, pair.Q.Cmp(big.NewInt(32771)))
}

func TestNeighborhoodOrdersSmallestFirst(t *testing.T) {
	n := big.NewInt(1073217479)
	// Center the neighborhood on the larger factor; certification must
	// still report (min, max).
	pair, ok, err := certify.Neighborhood(n, neighborhoodOf(32771))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, pair.P.Cmp(big.NewInt(32749)))
	require.Equal(t, 0, pair.Q.Cmp(big.NewInt(32771)))
}

func TestNeighborhoodMiss(t *testing.T) {
	n := big.NewInt(1073217479)
	_, ok, err := certify.Neighborhood(n, neighborhoodOf(100))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNeighborhoodSkipsDegenerateCandidates(t *testing.T) {
	n := big.NewInt(97)
	candidates := [3]*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(97)}
	_, ok, err := certify.Neighborhood(n, candidates)
	require.NoError(t, err)
	require.False(t, ok, "d<=1 and d>=n must both be skipped")
}
