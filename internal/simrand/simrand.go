// Package simrand wraps the seeded random source shared by every part of
// the simulation. All draws go through one *RNG so that identical seeds
// replay identical seasons.
package simrand

import (
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RNG is the single random source owned by the simulator. It is not safe
// for concurrent use; the service mutex serializes all draws.
type RNG struct {
	*exprand.Rand
}

// New creates a seeded RNG.
func New(seed uint64) *RNG {
	return &RNG{Rand: exprand.New(exprand.NewSource(seed))}
}

// Range returns a uniform draw in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Poisson draws a count with the given mean.
func (r *RNG) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	p := distuv.Poisson{Lambda: lambda, Src: r.Rand}
	return int(p.Rand())
}

// ExpDuration draws a geometric-like duration with the given mean,
// truncated to [1, max].
func (r *RNG) ExpDuration(mean float64, max int) int {
	if mean <= 0 {
		return 1
	}
	e := distuv.Exponential{Rate: 1.0 / mean, Src: r.Rand}
	n := int(math.Ceil(e.Rand()))
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}
	return n
}

// WeightedIndex picks an index proportionally to weights. Negative or zero
// weights never win unless every weight is non-positive, in which case the
// pick is uniform.
func (r *RNG) WeightedIndex(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return r.Intn(len(weights))
	}
	target := r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// Noise returns a deterministic per-key jitter in [-scale, scale]. The
// hash keeps repeated lineup builds stable for the same player and day.
func Noise(key string, salt uint64, scale float64) float64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= 1099511628211
	}
	h ^= salt
	h *= 1099511628211
	unit := float64(h%10000)/5000.0 - 1.0
	return unit * scale
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
