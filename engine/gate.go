package engine

import "math/big"

var (
	gateLo = big.NewInt(1e14)
	gateHi = new(big.Int).SetUint64(1_000_000_000_000_000_000) // 1e18

	// whitelistedChallenge is the single named 127-bit semiprime the
	// operational gate admits when AllowWhitelistedChallenge is set.
	whitelistedChallenge = mustBigInt("137524771864208156028430259349934309717")
)

func mustBigInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("engine: invalid whitelist constant " + s)
	}
	return v
}

// inGate reports whether n is admissible: inside [1e14, 1e18], or the
// whitelisted 127-bit challenge with the whitelist flag enabled.
func inGate(n *big.Int, allowWhitelisted bool) bool {
	if n.Cmp(gateLo) >= 0 && n.Cmp(gateHi) <= 0 {
		return true
	}
	return allowWhitelisted && n.Cmp(whitelistedChallenge) == 0
}
