package sim

import (
	"math/rand"
	"strings"
	"testing"
)

// newTestContainer builds a running, unbound container with a fixed seed.
func newTestContainer(name string, capacity ResourceVector) *Container {
	c := NewContainer(name, capacity, ResourceVector{}, 0)
	c.bind(nil, rand.New(rand.NewSource(1)))
	c.running = true
	return c
}

// newTestWorkload builds a pending workload with a fixed seed.
func newTestWorkload(id string, demand ResourceVector, delay, duration float64) *Workload {
	return &Workload{
		ID:       id,
		Demand:   demand,
		Delay:    delay,
		Duration: duration,
		State:    StatePending,
		rng:      rand.New(rand.NewSource(1)),
	}
}

func TestClassicFirstFit_PicksFirstFeasibleInOrder(t *testing.T) {
	// GIVEN a too-small container listed before a big one
	small := newTestContainer("small", ResourceVector{CPU: 1, RAM: 512, Disk: 10, Bandwidth: 10})
	big := newTestContainer("big", ResourceVector{CPU: 8, RAM: 8192, Disk: 100, Bandwidth: 1000})
	lb := NewFirstFitLoadBalancer(false)

	// WHEN placing a workload that only fits the big one
	w := newTestWorkload("w1", ResourceVector{CPU: 2, RAM: 1024, Disk: 20, Bandwidth: 100}, 0, 5)
	got, _ := lb.Place(0, w, []*Container{small, big})

	// THEN the first feasible container in order wins
	if got != big {
		t.Fatalf("Place: got %v, want big", got)
	}
}

func TestClassicFirstFit_TieBrokenPurelyByListOrder(t *testing.T) {
	// GIVEN two equally feasible containers, the second far less loaded
	first := newTestContainer("first", ResourceVector{CPU: 4, RAM: 4096, Disk: 100, Bandwidth: 100})
	second := newTestContainer("second", ResourceVector{CPU: 64, RAM: 65536, Disk: 1000, Bandwidth: 1000})

	lb := NewFirstFitLoadBalancer(false)
	w := newTestWorkload("w1", ResourceVector{CPU: 1, RAM: 1024}, 0, 5)

	// WHEN placed, THEN the first in list order wins (no least-loaded heuristic)
	if got, _ := lb.Place(0, w, []*Container{first, second}); got != first {
		t.Fatalf("Place: got %v, want first (list order)", got)
	}
}

func TestClassicFirstFit_ChecksInstantaneousUsage(t *testing.T) {
	// GIVEN a container whose current usage leaves too little CPU headroom
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	running := newTestWorkload("running", ResourceVector{CPU: 3}, 0, 10)
	c.Admit(running, 0)

	lb := NewFirstFitLoadBalancer(false)

	// WHEN placing a workload needing more than the remaining headroom
	w := newTestWorkload("w1", ResourceVector{CPU: 2}, 0, 5)
	got, reason := lb.Place(0, w, []*Container{c})

	// THEN the placement is rejected with the breached resource named
	if got != nil {
		t.Fatalf("Place: got %v, want rejection", got)
	}
	if !strings.Contains(reason, "CPU") {
		t.Errorf("rejection reason %q does not name CPU", reason)
	}
}

func TestClassicFirstFit_IgnoresFutureOverlap(t *testing.T) {
	// GIVEN a container and two delayed workloads that will overlap in time,
	// each individually near capacity
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	lb := NewFirstFitLoadBalancer(false)

	w1 := newTestWorkload("w1", ResourceVector{CPU: 3}, 2, 10)
	w2 := newTestWorkload("w2", ResourceVector{CPU: 3}, 2, 10)

	// WHEN both are placed before either starts occupying resources
	got1, _ := lb.Place(0, w1, []*Container{c})
	got2, _ := lb.Place(0, w2, []*Container{c})

	// THEN classic mode admits both: the point-in-time check deliberately
	// ignores future overlapping placements
	if got1 != c || got2 != c {
		t.Fatalf("Place: got (%v, %v), want both admitted", got1, got2)
	}
}

func TestReservationFirstFit_OverlappingPeakRejectsLaterWorkload(t *testing.T) {
	// GIVEN a reservation-mode balancer and a container with CPU capacity 4
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	lb := NewFirstFitLoadBalancer(true)

	// WHEN two overlapping workloads whose combined peak exceeds capacity
	// are placed, with zero instantaneous usage at decision time
	w1 := newTestWorkload("w1", ResourceVector{CPU: 3}, 2, 10)
	w2 := newTestWorkload("w2", ResourceVector{CPU: 3}, 2, 10)
	got1, _ := lb.Place(0, w1, []*Container{c})
	got2, reason := lb.Place(0, w2, []*Container{c})

	// THEN the first is admitted and the later one rejected regardless of
	// instantaneous usage
	if got1 != c {
		t.Fatalf("first Place: got %v, want admitted", got1)
	}
	if got2 != nil {
		t.Fatalf("second Place: got %v, want rejection", got2)
	}
	if !strings.Contains(reason, "CPU") {
		t.Errorf("rejection reason %q does not name CPU", reason)
	}
}

func TestReservationFirstFit_NonOverlappingIntervalsShareContainer(t *testing.T) {
	// GIVEN a reservation-mode balancer and a container with CPU capacity 4
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	lb := NewFirstFitLoadBalancer(true)

	// WHEN two near-capacity workloads occupy disjoint intervals
	// ([0,10) and [10,20))
	w1 := newTestWorkload("w1", ResourceVector{CPU: 4}, 0, 10)
	w2 := newTestWorkload("w2", ResourceVector{CPU: 4}, 10, 10)
	got1, _ := lb.Place(0, w1, []*Container{c})
	got2, _ := lb.Place(0, w2, []*Container{c})

	// THEN both are admitted into the same container
	if got1 != c || got2 != c {
		t.Fatalf("Place: got (%v, %v), want both admitted", got1, got2)
	}
}

func TestReservationFirstFit_CommitVisibleToNextDecision(t *testing.T) {
	// GIVEN an accepted placement
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	lb := NewFirstFitLoadBalancer(true)
	w1 := newTestWorkload("w1", ResourceVector{CPU: 4}, 0, 10)
	if got, _ := lb.Place(0, w1, []*Container{c}); got != c {
		t.Fatal("setup: first workload not admitted")
	}

	// THEN its reservation is committed before the call returns
	if lb.Calendar("c").Len() != 1 {
		t.Fatalf("Calendar: got %d entries, want 1", lb.Calendar("c").Len())
	}

	// AND a second overlapping decision sees it
	w2 := newTestWorkload("w2", ResourceVector{CPU: 1}, 5, 10)
	if got, _ := lb.Place(0, w2, []*Container{c}); got != nil {
		t.Fatalf("second Place: got %v, want rejection from committed reservation", got)
	}
}

func TestReservationFirstFit_FallsThroughToLaterTarget(t *testing.T) {
	// GIVEN a full first target and a free second target
	c1 := newTestContainer("c1", ResourceVector{CPU: 2, RAM: 1024, Disk: 10, Bandwidth: 10})
	c2 := newTestContainer("c2", ResourceVector{CPU: 8, RAM: 8192, Disk: 100, Bandwidth: 100})
	lb := NewFirstFitLoadBalancer(true)
	w1 := newTestWorkload("w1", ResourceVector{CPU: 2}, 0, 10)
	w2 := newTestWorkload("w2", ResourceVector{CPU: 2}, 0, 10)

	// WHEN the second overlapping workload no longer fits the first target
	lb.Place(0, w1, []*Container{c1, c2})
	got, _ := lb.Place(0, w2, []*Container{c1, c2})

	// THEN it lands on the next target in order
	if got != c2 {
		t.Fatalf("Place: got %v, want c2", got)
	}
}

func TestNewLoadBalancer_TypesAndFactory(t *testing.T) {
	if lb := NewLoadBalancer(LBTypeClassicFirstFit, true); lb.Type() != LBTypeClassicFirstFit {
		t.Errorf("factory: got %q, want classic", lb.Type())
	}
	if lb := NewLoadBalancer(LBTypeFirstFitReservations, true); lb.Type() != LBTypeFirstFitReservations {
		t.Errorf("factory: got %q, want reservations", lb.Type())
	}
	// reservation_enabled=false degrades the reservation type to classic checks
	if lb := NewLoadBalancer(LBTypeFirstFitReservations, false); lb.Type() != LBTypeClassicFirstFit {
		t.Errorf("factory: got %q, want classic behavior when reservations disabled", lb.Type())
	}
	if got := AvailableLoadBalancerTypes(); len(got) != 2 {
		t.Errorf("AvailableLoadBalancerTypes: got %v", got)
	}
}
