// Validated simulation configuration: the logical object graph described in
// the external schema, independent of its serialization. The CLI decodes YAML
// into these structs; NewSimulator validates the graph and builds the entity
// hierarchy before any event runs.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultMonitorInterval is the sampling period used when the configuration
// does not set one.
const DefaultMonitorInterval = 1.0

// ConfigurationError describes a malformed or inconsistent input graph.
// Fatal: surfaced before simulation start, no recovery.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WorkloadSpec describes one workload's demand, timing and fluctuation.
type WorkloadSpec struct {
	CPU       float64
	RAM       float64
	Disk      float64
	Bandwidth float64

	Delay    float64
	Duration float64

	CPUFluctuationPercent       float64
	RAMFluctuationPercent       float64
	DiskFluctuationPercent      float64
	BandwidthFluctuationPercent float64

	Priority int
	Type     string
}

// Demand returns the base demand vector.
func (ws WorkloadSpec) Demand() ResourceVector {
	return ResourceVector{CPU: ws.CPU, RAM: ws.RAM, Disk: ws.Disk, Bandwidth: ws.Bandwidth}
}

// FluctuationPercent returns the per-resource variability percentages.
func (ws WorkloadSpec) FluctuationPercent() ResourceVector {
	return ResourceVector{
		CPU:       ws.CPUFluctuationPercent,
		RAM:       ws.RAMFluctuationPercent,
		Disk:      ws.DiskFluctuationPercent,
		Bandwidth: ws.BandwidthFluctuationPercent,
	}
}

// ContainerSpec describes a container's capacity and its attached workloads.
type ContainerSpec struct {
	Name      string
	CPU       float64
	RAM       float64
	Disk      float64
	Bandwidth float64

	StartUpDelay float64

	CPUFluctuationPercent       float64
	RAMFluctuationPercent       float64
	DiskFluctuationPercent      float64
	BandwidthFluctuationPercent float64

	Workloads []WorkloadSpec
}

func (cs ContainerSpec) capacity() ResourceVector {
	return ResourceVector{CPU: cs.CPU, RAM: cs.RAM, Disk: cs.Disk, Bandwidth: cs.Bandwidth}
}

func (cs ContainerSpec) fluctuationPercent() ResourceVector {
	return ResourceVector{
		CPU:       cs.CPUFluctuationPercent,
		RAM:       cs.RAMFluctuationPercent,
		Disk:      cs.DiskFluctuationPercent,
		Bandwidth: cs.BandwidthFluctuationPercent,
	}
}

// NodeSpec describes a node's capacity, behavior on exhaustion, and its
// containers.
type NodeSpec struct {
	Name      string
	CPU       float64
	RAM       float64
	Disk      float64
	Bandwidth float64

	StartUpDelay float64

	CPUFluctuationPercent       float64
	RAMFluctuationPercent       float64
	DiskFluctuationPercent      float64
	BandwidthFluctuationPercent float64

	StopLackOfResource bool
	Containers         []ContainerSpec
}

func (ns NodeSpec) capacity() ResourceVector {
	return ResourceVector{CPU: ns.CPU, RAM: ns.RAM, Disk: ns.Disk, Bandwidth: ns.Bandwidth}
}

func (ns NodeSpec) fluctuationPercent() ResourceVector {
	return ResourceVector{
		CPU:       ns.CPUFluctuationPercent,
		RAM:       ns.RAMFluctuationPercent,
		Disk:      ns.DiskFluctuationPercent,
		Bandwidth: ns.BandwidthFluctuationPercent,
	}
}

// DatacenterSpec is the root of the entity hierarchy.
type DatacenterSpec struct {
	Name  string
	Nodes []NodeSpec
}

// LoadBalancerSpec describes the placement policy and the workloads routed
// through it.
type LoadBalancerSpec struct {
	Enabled bool
	Type    string
	// ReservationEnabled toggles the interval-aware check for the
	// reservation-capable type; nil defaults to true.
	ReservationEnabled *bool
	TargetContainers   []string
	Workloads          []WorkloadSpec
}

// SimulationConfig is the full declarative input graph.
type SimulationConfig struct {
	Duration        float64
	MonitorInterval float64 // 0 means DefaultMonitorInterval
	Datacenter      DatacenterSpec
	LoadBalancer    *LoadBalancerSpec
}

// Validate checks the graph for inconsistencies. Returns a
// *ConfigurationError describing the first problem found, or nil.
func (cfg *SimulationConfig) Validate() error {
	if cfg.Duration <= 0 {
		return configErrorf("duration", "must be positive, got %v", cfg.Duration)
	}
	if cfg.MonitorInterval < 0 {
		return configErrorf("monitor_interval", "must not be negative, got %v", cfg.MonitorInterval)
	}
	if cfg.Datacenter.Name == "" {
		return configErrorf("datacenter.name", "must not be empty")
	}
	if len(cfg.Datacenter.Nodes) == 0 {
		return configErrorf("datacenter.nodes", "at least one node is required")
	}

	nodeNames := make(map[string]bool)
	containerNames := make(map[string]bool)
	for _, ns := range cfg.Datacenter.Nodes {
		field := "node '" + ns.Name + "'"
		if ns.Name == "" {
			return configErrorf("datacenter.nodes", "node name must not be empty")
		}
		if nodeNames[ns.Name] {
			return configErrorf(field, "duplicate node name")
		}
		nodeNames[ns.Name] = true
		if err := validateCapacity(field, ns.capacity(), ns.fluctuationPercent(), ns.StartUpDelay); err != nil {
			return err
		}
		for _, cs := range ns.Containers {
			cField := field + " container '" + cs.Name + "'"
			if cs.Name == "" {
				return configErrorf(field, "container name must not be empty")
			}
			if containerNames[cs.Name] {
				return configErrorf(cField, "duplicate container name")
			}
			containerNames[cs.Name] = true
			if err := validateCapacity(cField, cs.capacity(), cs.fluctuationPercent(), cs.StartUpDelay); err != nil {
				return err
			}
			for i, ws := range cs.Workloads {
				if err := validateWorkload(fmt.Sprintf("%s workload[%d]", cField, i), ws); err != nil {
					return err
				}
			}
		}
	}

	if lb := cfg.LoadBalancer; lb != nil && lb.Enabled {
		if !knownLBType(lb.Type) {
			return configErrorf("load_balancer.type", "unknown type %q, supported: %v", lb.Type, AvailableLoadBalancerTypes())
		}
		if len(lb.TargetContainers) == 0 && len(lb.Workloads) > 0 {
			return configErrorf("load_balancer.target_containers", "must name at least one container")
		}
		seen := make(map[string]bool)
		for _, name := range lb.TargetContainers {
			if !containerNames[name] {
				return configErrorf("load_balancer.target_containers", "unknown container %q", name)
			}
			if seen[name] {
				return configErrorf("load_balancer.target_containers", "container %q listed twice", name)
			}
			seen[name] = true
		}
		for i, ws := range lb.Workloads {
			if err := validateWorkload(fmt.Sprintf("load_balancer workload[%d]", i), ws); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCapacity(field string, capacity, pct ResourceVector, startUpDelay float64) error {
	if capacity.AnyNegative() {
		return configErrorf(field, "negative capacity [%s]", capacity)
	}
	if pct.AnyNegative() {
		return configErrorf(field, "negative fluctuation percent [%s]", pct)
	}
	if startUpDelay < 0 {
		return configErrorf(field, "negative start_up_delay %v", startUpDelay)
	}
	return nil
}

func validateWorkload(field string, ws WorkloadSpec) error {
	if ws.Demand().AnyNegative() {
		return configErrorf(field, "negative demand [%s]", ws.Demand())
	}
	if ws.FluctuationPercent().AnyNegative() {
		return configErrorf(field, "negative fluctuation percent [%s]", ws.FluctuationPercent())
	}
	if ws.Delay < 0 {
		return configErrorf(field, "negative delay %v", ws.Delay)
	}
	if ws.Duration <= 0 {
		return configErrorf(field, "duration must be positive, got %v", ws.Duration)
	}
	return nil
}

func knownLBType(lbType string) bool {
	for _, t := range AvailableLoadBalancerTypes() {
		if t == lbType {
			return true
		}
	}
	return false
}

// NewSimulator validates the configuration, builds the entity hierarchy, and
// schedules the initial events (node starts, workload injections, monitor
// ticks). A configuration error aborts before any event runs.
func NewSimulator(cfg *SimulationConfig, seed int64) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(seed))
	interval := cfg.MonitorInterval
	if interval == 0 {
		interval = DefaultMonitorInterval
	}

	sim := &Simulator{
		Horizon:    cfg.Duration,
		EventQueue: make(EventQueue, 0),
		RNG:        rng,
		Datacenter: NewDatacenter(cfg.Datacenter.Name),
		Monitor:    NewMonitor(interval),
		Metrics:    NewMetrics(),
	}

	workloadSeq := 0
	newWorkload := func(ws WorkloadSpec) *Workload {
		workloadSeq++
		id := fmt.Sprintf("workload-%d", workloadSeq)
		w := &Workload{
			ID:                 id,
			Demand:             ws.Demand(),
			FluctuationPercent: ws.FluctuationPercent(),
			Delay:              ws.Delay,
			Duration:           ws.Duration,
			Priority:           ws.Priority,
			Type:               ws.Type,
			State:              StatePending,
			rng:                rng.ForSubsystem(SubsystemWorkload(id)),
		}
		sim.Workloads = append(sim.Workloads, w)
		return w
	}

	for _, ns := range cfg.Datacenter.Nodes {
		node := NewNode(ns.Name, ns.capacity(), ns.fluctuationPercent(), ns.StartUpDelay, ns.StopLackOfResource)
		node.bindRNG(rng.ForSubsystem(SubsystemNode(ns.Name)))
		for _, cs := range ns.Containers {
			c := NewContainer(cs.Name, cs.capacity(), cs.fluctuationPercent(), cs.StartUpDelay)
			c.bind(node, rng.ForSubsystem(SubsystemContainer(cs.Name)))
			node.AddContainer(c)
		}
		if err := sim.Datacenter.AddNode(node); err != nil {
			return nil, &ConfigurationError{Field: "datacenter.nodes", Reason: err.Error()}
		}

		// Start events are scheduled up front (start times are static:
		// node delay, plus container delay on top) so that same-instant
		// workload injections observe starts in hierarchy order.
		sim.Schedule(&NodeStartEvent{time: ns.StartUpDelay, Node: node})
		for i, c := range node.Containers() {
			sim.Schedule(&ContainerStartEvent{time: ns.StartUpDelay + ns.Containers[i].StartUpDelay, Container: c})
		}
		for i, cs := range ns.Containers {
			c := node.Containers()[i]
			for _, ws := range cs.Workloads {
				w := newWorkload(ws)
				sim.Schedule(&WorkloadAdmissionEvent{time: w.Delay, Workload: w, Container: c})
			}
		}
	}

	if lb := cfg.LoadBalancer; lb != nil && len(lb.Workloads) > 0 {
		if !lb.Enabled {
			logrus.Warnf("load balancer disabled: ignoring %d workloads attached to it", len(lb.Workloads))
		} else {
			reservations := true
			if lb.ReservationEnabled != nil {
				reservations = *lb.ReservationEnabled
			}
			sim.LoadBalancer = NewLoadBalancer(lb.Type, reservations)
			for _, name := range lb.TargetContainers {
				c, _ := sim.Datacenter.ContainerByName(name)
				sim.LBTargets = append(sim.LBTargets, c)
			}
			for _, ws := range lb.Workloads {
				w := newWorkload(ws)
				sim.Schedule(&WorkloadPlacementEvent{time: 0, Workload: w})
			}
		}
	}

	sim.Schedule(&MonitorTickEvent{time: 0})
	return sim, nil
}
