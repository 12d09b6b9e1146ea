// Fluctuation model: pure functions computing randomized deviation of a
// resource quantity from a base value and a per-resource percentage.
//
// For a base value R and percentage S, the deviation magnitude is
// Delta = R*S/100. Three variants are used in the hierarchy:
//
//   - workload demand:   fresh uniform draw in [R-Delta, R+Delta], floored at 0
//   - container overlay: uniform draw in [-Delta, Delta] around zero
//   - node overhead:     |uniform draw in [-Delta, Delta]| (host/kernel
//     consumption can only take capacity, never free it)
//
// Draws are independent per resource and per sampling tick; there is never a
// running random walk.

package sim

import "math/rand"

// uniformBetween draws uniformly from [lo, hi]. Degenerate ranges (lo == hi,
// i.e. zero percentage) return lo without consuming randomness state beyond
// the single Float64 call, keeping draw counts stable across configurations.
func uniformBetween(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// DemandDraw returns a fresh randomized demand around base: each component is
// drawn uniformly from [R-Delta, R+Delta] with the lower bound clamped at
// zero. Used for a workload's current demand at admission and at every
// re-sampling tick.
func DemandDraw(rng *rand.Rand, base, pct ResourceVector) ResourceVector {
	return ResourceVector{
		CPU:       demandComponent(rng, base.CPU, pct.CPU),
		RAM:       demandComponent(rng, base.RAM, pct.RAM),
		Disk:      demandComponent(rng, base.Disk, pct.Disk),
		Bandwidth: demandComponent(rng, base.Bandwidth, pct.Bandwidth),
	}
}

func demandComponent(rng *rand.Rand, base, pct float64) float64 {
	delta := base * pct / 100
	lo := base - delta
	if lo < 0 {
		lo = 0
	}
	return uniformBetween(rng, lo, base+delta)
}

// FluctuationDraw returns a signed fluctuation vector: each component drawn
// uniformly from [-Delta, Delta] where Delta is derived from the entity's own
// capacity. Containers add this directly to their aggregated workload demand.
func FluctuationDraw(rng *rand.Rand, capacity, pct ResourceVector) ResourceVector {
	return ResourceVector{
		CPU:       fluctuationComponent(rng, capacity.CPU, pct.CPU),
		RAM:       fluctuationComponent(rng, capacity.RAM, pct.RAM),
		Disk:      fluctuationComponent(rng, capacity.Disk, pct.Disk),
		Bandwidth: fluctuationComponent(rng, capacity.Bandwidth, pct.Bandwidth),
	}
}

func fluctuationComponent(rng *rand.Rand, capacity, pct float64) float64 {
	delta := capacity * pct / 100
	return uniformBetween(rng, -delta, delta)
}

// OverheadDraw returns a node's own consumption overlay: the absolute value of
// a FluctuationDraw. Node overhead models host and kernel consumption, which
// cannot be negative.
func OverheadDraw(rng *rand.Rand, capacity, pct ResourceVector) ResourceVector {
	return FluctuationDraw(rng, capacity, pct).Abs()
}
