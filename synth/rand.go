// SPDX-License-Identifier: EPL-2.0

package synth

import "math"

const defaultSeed uint32 = 0x2545f491

// Rand is a xorshift32 generator. It is deterministic for a given seed, never
// allocates and is not safe for concurrent use.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint32) *Rand {
	r := &Rand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator. Zero is replaced by a fixed non-zero seed because
// xorshift never leaves the all-zero state.
func (r *Rand) Seed(seed uint32) {
	if seed == 0 {
		seed = defaultSeed
	}
	r.state = seed
}

// Uint32 returns the next value of the sequence.
func (r *Rand) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}

// Bipolar returns a value in [-1, 1).
func (r *Rand) Bipolar() float64 {
	return 2*r.Float64() - 1
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(uint64(r.Uint32()) * uint64(n) >> 32)
}

// Perturb offsets value by ±(amount × (hi-lo)) and clamps the result to [lo, hi].
func (r *Rand) Perturb(value, amount, lo, hi float64) float64 {
	if amount > 0 {
		value += r.Bipolar() * amount * (hi - lo)
	}
	return clamp(value, lo, hi)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo || math.IsNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
