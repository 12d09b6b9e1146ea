// Per-container reservation calendar used by the interval-aware load
// balancer. Entries are append-only: once committed a reservation is never
// retroactively removed, it simply stops mattering once the sweep window
// moves past its end.

package sim

// Reservation is one committed interval of future demand on a container.
// The interval is half-open [Start, End), so a workload ending exactly when
// another starts does not overlap it.
type Reservation struct {
	Start  float64
	End    float64
	Demand ResourceVector
}

// Overlaps reports whether the reservation intersects [start, end).
func (r Reservation) Overlaps(start, end float64) bool {
	return r.Start < end && start < r.End
}

// ReservationCalendar is the append-only ordered ledger of committed
// intervals for a single container, one entry per admitted workload.
type ReservationCalendar struct {
	entries []Reservation
}

// Commit appends an accepted reservation. Entries are never removed.
func (rc *ReservationCalendar) Commit(r Reservation) {
	rc.entries = append(rc.entries, r)
}

// Len returns the number of committed reservations, expired ones included.
func (rc *ReservationCalendar) Len() int {
	return len(rc.entries)
}

// Entries returns the committed reservations in commit order.
// The returned slice is the calendar's internal storage; callers must not
// modify it.
func (rc *ReservationCalendar) Entries() []Reservation {
	return rc.entries
}

// PeakWithin computes the maximum simultaneous committed demand at any
// instant inside [start, end), per resource. The demand envelope is a step
// function whose value only changes at reservation boundaries, so its peak
// inside the window occurs either at the window start or at the start of an
// overlapping reservation; evaluating the active sum at those points is an
// exact sweep.
func (rc *ReservationCalendar) PeakWithin(start, end float64) ResourceVector {
	var peak ResourceVector

	points := []float64{start}
	for _, r := range rc.entries {
		if r.Overlaps(start, end) && r.Start > start {
			points = append(points, r.Start)
		}
	}

	for _, t := range points {
		var active ResourceVector
		for _, r := range rc.entries {
			if r.Start <= t && t < r.End {
				active = active.Add(r.Demand)
			}
		}
		peak = peak.Max(active)
	}
	return peak
}
