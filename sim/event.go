package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a virtual timestamp and an Execute method that advances
// simulation state when invoked. Events never block; anything that needs to
// happen later is expressed by scheduling a further event.
type Event interface {
	Time() float64
	Execute(*Simulator)
}

// NodeStartEvent fires once the node's start-up delay has elapsed.
type NodeStartEvent struct {
	time float64
	Node *Node
}

func (e *NodeStartEvent) Time() float64 { return e.time }

func (e *NodeStartEvent) Execute(sim *Simulator) {
	e.Node.Start(e.time)
}

// ContainerStartEvent fires once a container's start-up delay has elapsed on
// top of its node's. Both start events are scheduled up front at construction
// so that same-instant workload injections observe them in hierarchy order.
type ContainerStartEvent struct {
	time      float64
	Container *Container
}

func (e *ContainerStartEvent) Time() float64 { return e.time }

func (e *ContainerStartEvent) Execute(sim *Simulator) {
	e.Container.Start(e.time)
}

// WorkloadPlacementEvent consults the load balancer for a workload injected
// through it. The placement decision happens at injection time; the accepted
// workload begins occupying resources only after its delay.
type WorkloadPlacementEvent struct {
	time     float64
	Workload *Workload
}

func (e *WorkloadPlacementEvent) Time() float64 { return e.time }

func (e *WorkloadPlacementEvent) Execute(sim *Simulator) {
	w := e.Workload
	if w.State.Terminal() {
		return
	}
	target, reason := sim.LoadBalancer.Place(e.time, w, sim.LBTargets)
	if target == nil {
		w.MarkRejected(e.time, reason)
		sim.Metrics.RejectedWorkloads++
		logrus.Warnf("[%.2f] LB rejected workload '%s': %s", e.time, w.ID, reason)
		return
	}
	logrus.Infof("[%.2f] LB placed workload '%s' (%s) on container '%s'", e.time, w.ID, w.Type, target.Name())
	sim.Schedule(&WorkloadStartEvent{time: e.time + w.Delay, Workload: w, Container: target})
}

// WorkloadAdmissionEvent is the admission attempt of a container-attached
// workload that does not go through the load balancer: a point-in-time check
// against its designated container's free capacity.
type WorkloadAdmissionEvent struct {
	time      float64
	Workload  *Workload
	Container *Container
}

func (e *WorkloadAdmissionEvent) Time() float64 { return e.time }

func (e *WorkloadAdmissionEvent) Execute(sim *Simulator) {
	w := e.Workload
	c := e.Container
	if w.State.Terminal() {
		return
	}
	if !c.Running() {
		sim.reject(w, e.time, "container '"+c.Name()+"' is not running")
		return
	}
	available := c.Available()
	if !w.Demand.Fits(available) {
		sim.reject(w, e.time, "container '"+c.Name()+"' has insufficient resources")
		return
	}
	sim.admit(w, c, e.time)
}

// WorkloadStartEvent commits an LB-accepted workload into its container once
// its delay has elapsed. No second feasibility check happens here: the
// placement decision already committed the resources (reservation mode) or
// deliberately accepted transient oversubscription (classic mode).
type WorkloadStartEvent struct {
	time      float64
	Workload  *Workload
	Container *Container
}

func (e *WorkloadStartEvent) Time() float64 { return e.time }

func (e *WorkloadStartEvent) Execute(sim *Simulator) {
	w := e.Workload
	c := e.Container
	if w.State.Terminal() {
		return
	}
	if !c.Running() {
		sim.reject(w, e.time, "container '"+c.Name()+"' stopped before workload start")
		return
	}
	sim.admit(w, c, e.time)
}

// WorkloadReleaseEvent fires at the end of a workload's duration and returns
// its resources. A no-op if the workload was already terminated by a node
// hard-stop; terminal processes are simply never rescheduled.
type WorkloadReleaseEvent struct {
	time     float64
	Workload *Workload
}

func (e *WorkloadReleaseEvent) Time() float64 { return e.time }

func (e *WorkloadReleaseEvent) Execute(sim *Simulator) {
	w := e.Workload
	if w.State != StateRunning {
		return
	}
	w.Container.Release(w, e.time)
	sim.Metrics.CompletedWorkloads++
}

// MonitorTickEvent samples every node and container at the monitoring period
// and reschedules itself until the horizon.
type MonitorTickEvent struct {
	time float64
}

func (e *MonitorTickEvent) Time() float64 { return e.time }

func (e *MonitorTickEvent) Execute(sim *Simulator) {
	sim.sample(e.time)
	next := e.time + sim.Monitor.Interval
	if next <= sim.Horizon {
		sim.Schedule(&MonitorTickEvent{time: next})
	}
}
