// First-fit placement, with and without time-windowed reservations.
//
// Classic mode is a point-in-time check: a container is feasible iff its
// instantaneous free capacity covers the workload's base demand on all four
// resources. Future overlapping workloads are not considered, so later
// placements can still oversubscribe transiently; this mirrors
// immediate-scheduling semantics and is intended behavior, not a defect.
//
// Reservation mode checks the workload's whole prospective interval against
// the envelope of concurrently committed reservations and commits the
// accepted interval before returning, so subsequent decisions see it.

package sim

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FirstFitLoadBalancer admits a workload into the first feasible container in
// target order. Ties are broken purely by list order; there is no load-aware
// or least-loaded heuristic.
type FirstFitLoadBalancer struct {
	useReservations bool
	calendars       map[string]*ReservationCalendar // keyed by container name
}

// NewFirstFitLoadBalancer creates a first-fit balancer. With useReservations
// the balancer keeps a per-container reservation calendar and performs the
// interval-aware feasibility check; without it the check is instantaneous.
func NewFirstFitLoadBalancer(useReservations bool) *FirstFitLoadBalancer {
	return &FirstFitLoadBalancer{
		useReservations: useReservations,
		calendars:       make(map[string]*ReservationCalendar),
	}
}

// Type returns the configuration identifier of this balancer.
func (lb *FirstFitLoadBalancer) Type() string {
	if lb.useReservations {
		return LBTypeFirstFitReservations
	}
	return LBTypeClassicFirstFit
}

// Calendar returns the reservation calendar for a container, creating it on
// first use. Only populated in reservation mode.
func (lb *FirstFitLoadBalancer) Calendar(name string) *ReservationCalendar {
	rc, ok := lb.calendars[name]
	if !ok {
		rc = &ReservationCalendar{}
		lb.calendars[name] = rc
	}
	return rc
}

// Place scans targets in order and admits into the first feasible container.
// The read-then-append on the reservation calendar happens within this single
// call, which the single-threaded engine executes atomically relative to
// other admission decisions.
func (lb *FirstFitLoadBalancer) Place(now float64, w *Workload, targets []*Container) (*Container, string) {
	start := now + w.Delay
	end := start + w.Duration

	var reasons []string
	for _, c := range targets {
		if reason := lb.feasible(c, w, start, end); reason != "" {
			logrus.Debugf("[%.2f] LB: container '%s' cannot take workload '%s': %s", now, c.Name(), w.ID, reason)
			reasons = append(reasons, c.Name()+": "+reason)
			continue
		}
		if lb.useReservations {
			lb.Calendar(c.Name()).Commit(Reservation{Start: start, End: end, Demand: w.Demand})
		}
		return c, ""
	}
	return nil, "no feasible container: " + strings.Join(reasons, "; ")
}

// feasible returns "" when the container can host the workload, otherwise a
// description of the first failing check.
func (lb *FirstFitLoadBalancer) feasible(c *Container, w *Workload, start, end float64) string {
	if c.Node() != nil && c.Node().Stopped() {
		return "node stopped"
	}

	if !lb.useReservations {
		// Classic first-fit: instantaneous free capacity at the decision
		// instant must cover the base demand.
		available := c.Available()
		if w.Demand.Fits(available) {
			return ""
		}
		return "insufficient " + strings.Join(ExceededResources(w.Demand, available), ", ")
	}

	// Reservation mode: the envelope of committed reservations overlapping
	// [start, end), plus the candidate demand, must stay within capacity at
	// every swept instant.
	peak := lb.Calendar(c.Name()).PeakWithin(start, end)
	expected := peak.Add(w.Demand)
	if expected.Fits(c.Capacity()) {
		return ""
	}
	return "reserved peak exceeds capacity on " + strings.Join(ExceededResources(expected, c.Capacity()), ", ")
}
