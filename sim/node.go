// Defines the Node, the top-level host with fixed capacity. A node aggregates
// the current usage of its containers plus its own non-negative overhead, and
// may be configured to hard-stop its whole subtree on resource exhaustion.

package sim

import (
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
)

// Node hosts containers inside a datacenter.
type Node struct {
	holderBase

	// StopOnExhaustion terminates the node and its subtree the instant its
	// capacity is breached. When false, a breach is surfaced as an invariant
	// violation and the simulation continues.
	StopOnExhaustion bool

	containers []*Container
	overhead   ResourceVector // last drawn |fluctuation|, host/kernel consumption
	stopped    bool
	rng        *rand.Rand
}

// NewNode creates a stopped node with the given immutable capacity and
// fluctuation percentages.
func NewNode(name string, capacity, fluctPct ResourceVector, startUpDelay float64, stopOnExhaustion bool) *Node {
	return &Node{
		holderBase: holderBase{
			name:         name,
			capacity:     capacity,
			fluctPct:     fluctPct,
			startUpDelay: startUpDelay,
		},
		StopOnExhaustion: stopOnExhaustion,
	}
}

// AddContainer attaches a container to the node. Construction-time only.
func (n *Node) AddContainer(c *Container) {
	n.containers = append(n.containers, c)
}

// Containers returns the node's containers in attachment order.
func (n *Node) Containers() []*Container {
	return n.containers
}

// bindRNG attaches the node's overhead stream. Called once at construction.
func (n *Node) bindRNG(rng *rand.Rand) {
	n.rng = rng
}

// Stopped reports whether the node has hard-stopped.
func (n *Node) Stopped() bool { return n.stopped }

// Overhead returns the node's last drawn own consumption.
func (n *Node) Overhead() ResourceVector { return n.overhead }

// Start marks the node running after its start-up delay.
func (n *Node) Start(now float64) {
	if n.stopped {
		return
	}
	n.running = true
	logrus.Infof("[%.2f] Node '%s' started.", now, n.name)
}

// Aggregate recomputes the node's usage from the last sampled usage of its
// containers plus a fresh non-negative overhead draw. The containers must
// have been resampled first within the same tick.
func (n *Node) Aggregate() ResourceVector {
	var usage ResourceVector
	for _, c := range n.containers {
		usage = usage.Add(c.CurrentUsage())
	}
	n.overhead = OverheadDraw(n.rng, n.capacity, n.fluctPct)
	n.usage = usage.Add(n.overhead)
	return n.usage
}

// CheckResources verifies the node invariant: contained container usage plus
// node overhead must not exceed capacity on any resource. Returns a
// human-readable breach description, or "" when the invariant holds.
func (n *Node) CheckResources() string {
	if n.usage.Fits(n.capacity) {
		return ""
	}
	return "out of " + strings.Join(ExceededResources(n.usage, n.capacity), ", ")
}

// Stop hard-stops the node and every contained container and workload at the
// same virtual timestamp. This is the only unsolicited termination path in
// the simulation. Returns the number of workloads killed across the subtree.
func (n *Node) Stop(now float64, reason string) int {
	if n.stopped {
		return 0
	}
	n.stopped = true
	n.running = false
	logrus.Errorf("[%.2f] Node '%s' SHUTTING DOWN: %s", now, n.name, reason)
	killed := 0
	for _, c := range n.containers {
		killed += c.Stop(now, "node '"+n.name+"' stopped: "+reason)
	}
	n.usage = ResourceVector{}
	n.overhead = ResourceVector{}
	return killed
}
