package sim

import (
	"math/rand"
	"testing"
)

func newTestNode(name string, capacity ResourceVector, stopOnExhaustion bool) *Node {
	n := NewNode(name, capacity, ResourceVector{}, 0, stopOnExhaustion)
	n.bindRNG(rand.New(rand.NewSource(1)))
	n.running = true
	return n
}

func TestNode_Aggregate_SumsContainerUsagePlusOverhead(t *testing.T) {
	// GIVEN a node with two containers carrying sampled usage
	n := newTestNode("n", ResourceVector{CPU: 8, RAM: 16384, Disk: 1000, Bandwidth: 1000}, false)
	c1 := newTestContainer("c1", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	c2 := newTestContainer("c2", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	n.AddContainer(c1)
	n.AddContainer(c2)

	c1.Admit(newTestWorkload("w1", ResourceVector{CPU: 1, RAM: 1024}, 0, 10), 0)
	c2.Admit(newTestWorkload("w2", ResourceVector{CPU: 2, RAM: 2048}, 0, 10), 0)

	// WHEN aggregating (0% node fluctuation => zero overhead)
	usage := n.Aggregate()

	// THEN usage is exactly the container sum
	want := ResourceVector{CPU: 3, RAM: 3072}
	if usage != want {
		t.Errorf("Aggregate: got %v, want %v", usage, want)
	}
	if breach := n.CheckResources(); breach != "" {
		t.Errorf("CheckResources: unexpected breach %q", breach)
	}
}

func TestNode_CheckResources_ReportsBreach(t *testing.T) {
	// GIVEN a node whose containers exceed its CPU capacity
	n := newTestNode("n", ResourceVector{CPU: 2, RAM: 16384, Disk: 1000, Bandwidth: 1000}, true)
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	n.AddContainer(c)
	c.Admit(newTestWorkload("w1", ResourceVector{CPU: 3}, 0, 10), 0)

	// WHEN aggregating
	n.Aggregate()

	// THEN the breach names the exhausted resource
	breach := n.CheckResources()
	if breach == "" {
		t.Fatal("CheckResources: expected a breach")
	}
}

func TestNode_Stop_TerminatesSubtreeAtSameTimestamp(t *testing.T) {
	// GIVEN a node running a container with two workloads
	n := newTestNode("n", ResourceVector{CPU: 2, RAM: 16384, Disk: 1000, Bandwidth: 1000}, true)
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	c.bind(n, rand.New(rand.NewSource(2)))
	n.AddContainer(c)
	w1 := newTestWorkload("w1", ResourceVector{CPU: 2}, 0, 10)
	w2 := newTestWorkload("w2", ResourceVector{CPU: 1}, 0, 10)
	c.Admit(w1, 0)
	c.Admit(w2, 0)

	// WHEN the node hard-stops at t=3
	killed := n.Stop(3, "out of CPU")

	// THEN the node, container and every workload terminate at t=3
	if killed != 2 {
		t.Errorf("Stop: reported %d killed workloads, want 2", killed)
	}
	if !n.Stopped() || n.Running() {
		t.Error("node must be stopped and not running")
	}
	if c.Running() {
		t.Error("container must be stopped")
	}
	for _, w := range []*Workload{w1, w2} {
		if w.State != StateRejected {
			t.Errorf("%s: got state %s, want rejected", w.ID, w.State)
		}
		if w.FinishedAt != 3 {
			t.Errorf("%s: finished at %v, want hard-stop time 3", w.ID, w.FinishedAt)
		}
	}
}

func TestNode_Stop_Idempotent(t *testing.T) {
	n := newTestNode("n", ResourceVector{CPU: 2}, true)
	n.Stop(1, "first")
	n.Stop(2, "second")
	if !n.Stopped() {
		t.Error("node must remain stopped")
	}
}

func TestContainer_ReleaseRestoresUsage(t *testing.T) {
	// GIVEN a container with one admitted workload
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	w := newTestWorkload("w1", ResourceVector{CPU: 2, RAM: 4096}, 0, 8)
	c.Admit(w, 1)

	if got := c.CurrentUsage(); got != (ResourceVector{CPU: 2, RAM: 4096}) {
		t.Fatalf("usage after admit: got %v", got)
	}

	// WHEN released at the end of its duration
	c.Release(w, 9)

	// THEN usage returns to zero and the workload completed
	if got := c.CurrentUsage(); !got.IsZero() {
		t.Errorf("usage after release: got %v, want zero", got)
	}
	if w.State != StateCompleted {
		t.Errorf("workload state: got %s, want completed", w.State)
	}
	if c.ActiveWorkloads() != 0 {
		t.Errorf("ActiveWorkloads: got %d, want 0", c.ActiveWorkloads())
	}
}

func TestContainer_Resample_ZeroFluctuationIsExact(t *testing.T) {
	// GIVEN a 0% fluctuation container with one active workload
	c := newTestContainer("c", ResourceVector{CPU: 4, RAM: 8192, Disk: 100, Bandwidth: 100})
	c.Admit(newTestWorkload("w1", ResourceVector{CPU: 2, RAM: 4096}, 0, 8), 0)

	// WHEN resampled
	got := c.Resample()

	// THEN usage equals the base demand exactly
	want := ResourceVector{CPU: 2, RAM: 4096}
	if got != want {
		t.Errorf("Resample: got %v, want %v", got, want)
	}
}
