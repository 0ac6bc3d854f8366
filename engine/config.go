// Package engine wires the precision policy, kernel gate, snap kernel,
// sampler/scheduler, and certification layer into the single entry point
// factor(N, cfg) -> Result described by the core contract.
package engine

import (
	"time"

	"github.com/amazingrofa/geofac/kernel"
)

// Config is the frozen set of options a Factor call accepts. Factor uses
// every field as given; zero values are not replaced by DefaultConfig's
// defaults.
type Config struct {
	// Precision is the floor for digit count; the effective precision is
	// max(Precision, bits(N)*4+200).
	Precision uint32
	// Samples bounds the number of outer-loop iterations over k.
	Samples int64
	// MSpan is the half-width of the inner m sweep, m in [-MSpan, MSpan].
	MSpan int64
	// Sigma is the Gaussian kernel width, also used as the snap weight
	// when KernelVariant is Gaussian.
	Sigma float64
	// J is the Dirichlet kernel half-width, used only when KernelVariant
	// is Dirichlet.
	J int
	// Threshold is the minimum accepted amplitude, in (0,1).
	Threshold float64
	// KLo, KHi bound the sampling window for k; 0 < KLo < KHi.
	KLo, KHi float64
	// SearchTimeout is the wall-clock budget; zero disables the deadline.
	SearchTimeout time.Duration
	// AllowWhitelistedChallenge bypasses the [1e14, 1e18] gate for the
	// single whitelisted 127-bit N.
	AllowWhitelistedChallenge bool
	// KernelVariant selects the Gaussian or Dirichlet amplitude gate.
	KernelVariant kernel.Variant
	// NewtonIterations bounds the snap kernel's refinement rounds, in
	// [0,3].
	NewtonIterations int
	// Workers bounds the inner m-scan's worker pool size; 0 selects a
	// single worker.
	Workers int
}

// DefaultConfig returns the configuration used by the literal end-to-end
// scenarios that don't override individual fields.
//
// KHi is set to 1e8: the angular resolution available to a sampled k is
// O(1/k) (the inner m sweep finds the nearest m to the ideal ratio), while
// the {p0-1,p0,p0+1} neighborhood tolerates roughly 1.5/p of error in the
// snapped candidate. For a balanced semiprime near the bottom of the
// operational gate (p ~ 1e7), that needs k on the order of a few million
// before the angle resolves finely enough to land in the neighborhood, so
// KHi = 1e8 keeps that band well inside [KLo, KHi].
func DefaultConfig() Config {
	return Config{
		Precision:        60,
		Samples:          20000,
		MSpan:            64,
		Sigma:            0.35,
		J:                8,
		Threshold:        0.2,
		KLo:              1000,
		KHi:              100_000_000,
		SearchTimeout:    30 * time.Second,
		KernelVariant:    kernel.Gaussian,
		NewtonIterations: 2,
		Workers:          4,
	}
}
