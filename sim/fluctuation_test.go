package sim

import (
	"math/rand"
	"testing"
)

func TestDemandDraw_WithinBounds(t *testing.T) {
	// GIVEN base R=2.5 with S=10% => bounds [2.25, 2.75]
	rng := rand.New(rand.NewSource(1))
	base := ResourceVector{CPU: 2.5, RAM: 1000, Disk: 100, Bandwidth: 50}
	pct := ResourceVector{CPU: 10, RAM: 10, Disk: 10, Bandwidth: 10}

	// WHEN drawn repeatedly
	for i := 0; i < 1000; i++ {
		d := DemandDraw(rng, base, pct)

		// THEN every component stays in [R-Delta, R+Delta]
		if d.CPU < 2.25 || d.CPU > 2.75 {
			t.Fatalf("DemandDraw CPU out of [2.25, 2.75]: %v", d.CPU)
		}
		if d.RAM < 900 || d.RAM > 1100 {
			t.Fatalf("DemandDraw RAM out of [900, 1100]: %v", d.RAM)
		}
	}
}

func TestDemandDraw_ZeroPercent_ReturnsBase(t *testing.T) {
	// GIVEN a 0% fluctuation
	rng := rand.New(rand.NewSource(7))
	base := ResourceVector{CPU: 2, RAM: 4096, Disk: 10, Bandwidth: 100}

	// WHEN drawn
	got := DemandDraw(rng, base, ResourceVector{})

	// THEN the draw equals the base exactly
	if got != base {
		t.Errorf("DemandDraw with 0%% fluctuation: got %v, want %v", got, base)
	}
}

func TestDemandDraw_LowerBoundClampedAtZero(t *testing.T) {
	// GIVEN a fluctuation wider than the base value (S=200%)
	rng := rand.New(rand.NewSource(3))
	base := ResourceVector{CPU: 1, RAM: 10, Disk: 1, Bandwidth: 1}
	pct := ResourceVector{CPU: 200, RAM: 200, Disk: 200, Bandwidth: 200}

	// WHEN drawn repeatedly, THEN demand never goes negative
	for i := 0; i < 1000; i++ {
		if d := DemandDraw(rng, base, pct); d.AnyNegative() {
			t.Fatalf("DemandDraw produced negative demand: %v", d)
		}
	}
}

func TestFluctuationDraw_SymmetricBounds(t *testing.T) {
	// GIVEN container capacity C=2 with S=5% => draw in [-0.1, 0.1]
	rng := rand.New(rand.NewSource(5))
	capacity := ResourceVector{CPU: 2, RAM: 2048, Disk: 100, Bandwidth: 100}
	pct := ResourceVector{CPU: 5, RAM: 5, Disk: 5, Bandwidth: 5}

	for i := 0; i < 1000; i++ {
		f := FluctuationDraw(rng, capacity, pct)
		if f.CPU < -0.1 || f.CPU > 0.1 {
			t.Fatalf("FluctuationDraw CPU out of [-0.1, 0.1]: %v", f.CPU)
		}
		if f.RAM < -102.4 || f.RAM > 102.4 {
			t.Fatalf("FluctuationDraw RAM out of [-102.4, 102.4]: %v", f.RAM)
		}
	}
}

func TestOverheadDraw_NonNegativeWithinMagnitude(t *testing.T) {
	// GIVEN node RAM capacity V=16384 with S=8% => |draw| in [0, 1310.72]
	rng := rand.New(rand.NewSource(9))
	capacity := ResourceVector{CPU: 8, RAM: 16384, Disk: 1000, Bandwidth: 1000}
	pct := ResourceVector{CPU: 8, RAM: 8, Disk: 8, Bandwidth: 8}

	for i := 0; i < 1000; i++ {
		o := OverheadDraw(rng, capacity, pct)

		// THEN the overhead is never negative (host consumption only takes)
		if o.AnyNegative() {
			t.Fatalf("OverheadDraw produced negative overhead: %v", o)
		}
		if o.RAM > 1310.72 {
			t.Fatalf("OverheadDraw RAM magnitude out of [0, 1310.72]: %v", o.RAM)
		}
	}
}

func TestDraws_DeterministicForFixedSeed(t *testing.T) {
	// GIVEN two RNGs with the same seed
	base := ResourceVector{CPU: 4, RAM: 8192, Disk: 500, Bandwidth: 300}
	pct := ResourceVector{CPU: 15, RAM: 10, Disk: 5, Bandwidth: 20}
	rngA := rand.New(rand.NewSource(1234))
	rngB := rand.New(rand.NewSource(1234))

	// WHEN drawing the same sequence, THEN the draws are identical
	for i := 0; i < 100; i++ {
		a := DemandDraw(rngA, base, pct)
		b := DemandDraw(rngB, base, pct)
		if a != b {
			t.Fatalf("draw %d diverged: %v vs %v", i, a, b)
		}
	}
}
