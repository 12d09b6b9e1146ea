// Defines the Container, the resource-bounded unit hosted on a Node.
// A container aggregates the current demand of its active workloads plus its
// own signed fluctuation; usage is recomputed at every sampling tick.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Container hosts workloads inside a Node. Usage state is mutated only during
// the container's own scheduled turn (admission, release, sampling), so no
// locking is needed under the single-threaded engine.
type Container struct {
	holderBase

	node      *Node
	workloads []*Workload // active (running) workloads, admission order
	rng       *rand.Rand  // container fluctuation stream
}

// NewContainer creates a stopped container with the given immutable capacity
// and fluctuation percentages. It becomes running once its start-up delay
// elapses after its node has started.
func NewContainer(name string, capacity, fluctPct ResourceVector, startUpDelay float64) *Container {
	return &Container{
		holderBase: holderBase{
			name:         name,
			capacity:     capacity,
			fluctPct:     fluctPct,
			startUpDelay: startUpDelay,
		},
	}
}

// bind attaches the container to its node and its RNG stream.
// Called once during simulator construction.
func (c *Container) bind(n *Node, rng *rand.Rand) {
	c.node = n
	c.rng = rng
}

// Node returns the host node, or nil before binding.
func (c *Container) Node() *Node {
	return c.node
}

// Start marks the container running after its start-up delay.
func (c *Container) Start(now float64) {
	if c.node != nil && c.node.Stopped() {
		return
	}
	c.running = true
	logrus.Infof("[%.2f] Container '%s' started.", now, c.name)
}

// Admit registers a running workload with the container. The workload's
// demand is drawn fresh at admission and contributes to usage immediately, so
// a second admission decision at the same instant sees it.
func (c *Container) Admit(w *Workload, now float64) {
	c.workloads = append(c.workloads, w)
	w.MarkRunning(c, now)
	c.usage = c.usage.Add(w.SampleDemand())
	logrus.Infof("[%.2f] Container '%s' admitted workload '%s' (%s)", now, c.name, w.ID, w.Type)
}

// Release deregisters a workload at the end of its duration and returns its
// last sampled demand to the pool.
func (c *Container) Release(w *Workload, now float64) {
	for i, active := range c.workloads {
		if active == w {
			c.workloads = append(c.workloads[:i], c.workloads[i+1:]...)
			break
		}
	}
	c.usage = c.usage.Sub(w.CurrentDemand).ClampZero()
	w.MarkCompleted(now)
	logrus.Infof("[%.2f] Container '%s' released workload '%s'", now, c.name, w.ID)
}

// Resample recomputes current usage: a fresh demand draw per active workload
// plus the container's own fluctuation, floored at zero per resource.
func (c *Container) Resample() ResourceVector {
	var demand ResourceVector
	for _, w := range c.workloads {
		demand = demand.Add(w.SampleDemand())
	}
	fluctuation := FluctuationDraw(c.rng, c.capacity, c.fluctPct)
	c.usage = demand.Add(fluctuation).ClampZero()
	return c.usage
}

// WorkloadDemandSum returns the sum of the last sampled demand of all active
// workloads, i.e. usage before the container's own fluctuation overlay.
func (c *Container) WorkloadDemandSum() ResourceVector {
	var demand ResourceVector
	for _, w := range c.workloads {
		demand = demand.Add(w.CurrentDemand)
	}
	return demand
}

// ActiveWorkloads returns the number of running workloads.
func (c *Container) ActiveWorkloads() int {
	return len(c.workloads)
}

// OverCapacity reports whether the last sampled usage exceeds capacity on any
// resource. On a correctly admission-controlled run this should not happen;
// the monitor surfaces it as an invariant violation.
func (c *Container) OverCapacity() bool {
	return !c.usage.Fits(c.capacity)
}

// Stop terminates the container and every workload it is running.
// Running workloads move to their terminal Rejected state with the given
// reason; the container stops accumulating usage. Returns the number of
// workloads killed so the caller can account for them.
func (c *Container) Stop(now float64, reason string) int {
	if !c.running {
		return 0
	}
	c.running = false
	killed := 0
	for _, w := range c.workloads {
		if !w.State.Terminal() {
			w.MarkRejected(now, reason)
			killed++
		}
	}
	c.workloads = nil
	c.usage = ResourceVector{}
	logrus.Errorf("[%.2f] Container '%s' stopped: %s", now, c.name, reason)
	return killed
}
