// sim/simulator.go
package sim

import (
	"container/heap"
	"math"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with its insertion sequence number. The sequence
// breaks timestamp ties in insertion order, which keeps same-instant delivery
// deterministic and whole runs reproducible for a fixed seed.
type queuedEvent struct {
	event Event
	seq   uint64
}

// EventQueue implements heap.Interface ordered by (timestamp, sequence).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].event.Time(), eq[j].event.Time()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds virtual time, the entity hierarchy,
// and the event loop. Single-threaded and cooperative: every entity's timed
// behavior is an event that runs to completion and schedules its successors.
type Simulator struct {
	Clock   float64
	Horizon float64

	EventQueue EventQueue
	seq        uint64

	RNG        *PartitionedRNG
	Datacenter *Datacenter

	// LoadBalancer routes the LB-attached workloads; nil when the
	// configuration disables it or defines none.
	LoadBalancer LoadBalancer
	LBTargets    []*Container

	// Workloads holds every injected workload, config order, for reporting.
	Workloads []*Workload

	Monitor *Monitor
	Metrics *Metrics
}

// Schedule pushes an event into the event queue, stamping it with the next
// insertion sequence number.
func (sim *Simulator) Schedule(ev Event) {
	sim.seq++
	heap.Push(&sim.EventQueue, queuedEvent{event: ev, seq: sim.seq})
}

// Run executes the event loop: pop the earliest event, advance the clock to
// it, execute it, until no events remain or the horizon is reached. The clock
// only ever moves forward.
func (sim *Simulator) Run() {
	for len(sim.EventQueue) > 0 {
		qe := heap.Pop(&sim.EventQueue).(queuedEvent)
		if qe.event.Time() > sim.Horizon {
			sim.Clock = sim.Horizon
			break
		}
		sim.Clock = qe.event.Time()
		logrus.Debugf("[%.2f] Executing %T", sim.Clock, qe.event)
		qe.event.Execute(sim)
	}
	sim.Metrics.EndedAt = math.Min(sim.Clock, sim.Horizon)
	logrus.Infof("[%.2f] Simulation ended", sim.Metrics.EndedAt)
}

// admit commits a workload into a container and schedules its release.
func (sim *Simulator) admit(w *Workload, c *Container, now float64) {
	c.Admit(w, now)
	sim.Metrics.AdmittedWorkloads++
	sim.Schedule(&WorkloadReleaseEvent{time: now + w.Duration, Workload: w})
}

// reject moves a workload to its terminal Rejected state. No retry is ever
// scheduled; retry policy is an external concern.
func (sim *Simulator) reject(w *Workload, now float64, reason string) {
	w.MarkRejected(now, reason)
	sim.Metrics.RejectedWorkloads++
	logrus.Warnf("[%.2f] Workload '%s' rejected: %s", now, w.ID, reason)
}

// sample takes one monitoring pass: resample every running container, then
// aggregate each node over its containers' fresh samples, record history, and
// enforce the capacity invariants. Containers are always resampled before
// their node within the same tick, so node aggregates are consistent with the
// container samples they sum over.
func (sim *Simulator) sample(now float64) {
	for _, n := range sim.Datacenter.Nodes() {
		if n.Stopped() {
			continue
		}
		for _, c := range n.Containers() {
			if c.Running() {
				c.Resample()
				if c.OverCapacity() {
					sim.Metrics.InvariantViolations++
					logrus.Errorf("[%.2f] INVARIANT: container '%s' usage %s exceeds capacity %s",
						now, c.Name(), c.CurrentUsage(), c.Capacity())
				}
			}
			sim.Monitor.Record(c.Name(), UsageSample{Time: now, Usage: c.CurrentUsage(), Available: c.Available()})
		}
		if n.Running() {
			n.Aggregate()
			if breach := n.CheckResources(); breach != "" {
				if n.StopOnExhaustion {
					sim.Metrics.RejectedWorkloads += n.Stop(now, breach)
					sim.Metrics.HardStoppedNodes = append(sim.Metrics.HardStoppedNodes, n.Name())
				} else {
					sim.Metrics.InvariantViolations++
					logrus.Errorf("[%.2f] Node '%s' %s but is not configured to stop", now, n.Name(), breach)
				}
			}
		}
		sim.Monitor.Record(n.Name(), UsageSample{Time: now, Usage: n.CurrentUsage(), Available: n.Available()})
	}
}

// UsageHistory returns the recorded samples for a node or container by name.
// Read-only to callers; never pruned during a run.
func (sim *Simulator) UsageHistory(entity string) []UsageSample {
	return sim.Monitor.History(entity)
}

// TerminalStates returns the final state of every workload keyed by ID.
// Meaningful after Run; workloads still pending or running at the horizon
// keep their last state.
func (sim *Simulator) TerminalStates() map[string]WorkloadState {
	out := make(map[string]WorkloadState, len(sim.Workloads))
	for _, w := range sim.Workloads {
		out[w.ID] = w.State
	}
	return out
}
