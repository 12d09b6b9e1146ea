// YAML configuration loading: decodes the declarative simulation file and
// maps it onto the validated sim configuration graph. The serialization
// format lives entirely here; the sim package only sees the logical schema.

package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/milanbalazs/ContSysSim/sim"
)

// Define structs for YAML
type yamlConfig struct {
	Simulation   yamlSimulation    `yaml:"simulation"`
	Datacenter   yamlDatacenter    `yaml:"datacenter"`
	LoadBalancer *yamlLoadBalancer `yaml:"load_balancer"`
}

type yamlSimulation struct {
	Duration        float64 `yaml:"duration"`
	MonitorInterval float64 `yaml:"monitor_interval"`
}

type yamlDatacenter struct {
	Name  string     `yaml:"name"`
	Nodes []yamlNode `yaml:"nodes"`
}

type yamlNode struct {
	Name                        string          `yaml:"name"`
	CPU                         float64         `yaml:"cpu"`
	RAM                         float64         `yaml:"ram"`
	Disk                        float64         `yaml:"disk"`
	Bandwidth                   float64         `yaml:"bandwidth"`
	StartUpDelay                float64         `yaml:"start_up_delay"`
	CPUFluctuationPercent       float64         `yaml:"cpu_fluctuation_percent"`
	RAMFluctuationPercent       float64         `yaml:"ram_fluctuation_percent"`
	DiskFluctuationPercent      float64         `yaml:"disk_fluctuation_percent"`
	BandwidthFluctuationPercent float64         `yaml:"bandwidth_fluctuation_percent"`
	StopLackOfResource          bool            `yaml:"stop_lack_of_resource"`
	Containers                  []yamlContainer `yaml:"containers"`
}

type yamlContainer struct {
	Name                        string         `yaml:"name"`
	CPU                         float64        `yaml:"cpu"`
	RAM                         float64        `yaml:"ram"`
	Disk                        float64        `yaml:"disk"`
	Bandwidth                   float64        `yaml:"bandwidth"`
	StartUpDelay                float64        `yaml:"start_up_delay"`
	CPUFluctuationPercent       float64        `yaml:"cpu_fluctuation_percent"`
	RAMFluctuationPercent       float64        `yaml:"ram_fluctuation_percent"`
	DiskFluctuationPercent      float64        `yaml:"disk_fluctuation_percent"`
	BandwidthFluctuationPercent float64        `yaml:"bandwidth_fluctuation_percent"`
	Workloads                   []yamlWorkload `yaml:"workloads"`
}

type yamlWorkload struct {
	CPU                         float64 `yaml:"cpu"`
	RAM                         float64 `yaml:"ram"`
	Disk                        float64 `yaml:"disk"`
	Bandwidth                   float64 `yaml:"bandwidth"`
	Delay                       float64 `yaml:"delay"`
	Duration                    float64 `yaml:"duration"`
	CPUFluctuationPercent       float64 `yaml:"cpu_fluctuation_percent"`
	RAMFluctuationPercent       float64 `yaml:"ram_fluctuation_percent"`
	DiskFluctuationPercent      float64 `yaml:"disk_fluctuation_percent"`
	BandwidthFluctuationPercent float64 `yaml:"bandwidth_fluctuation_percent"`
	Priority                    int     `yaml:"priority"`
	Type                        string  `yaml:"type"`
}

type yamlLoadBalancer struct {
	Enabled            bool           `yaml:"enabled"`
	Type               string         `yaml:"type"`
	ReservationEnabled *bool          `yaml:"reservation_enabled"`
	TargetContainers   []string       `yaml:"target_containers"`
	Workloads          []yamlWorkload `yaml:"workloads"`
}

// LoadSimulationConfig reads and decodes a YAML simulation file into the sim
// configuration graph. Validation of the graph itself happens in
// sim.NewSimulator; this only surfaces I/O and syntax problems.
func LoadSimulationConfig(path string) (*sim.SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return raw.toSimConfig(), nil
}

func (y *yamlConfig) toSimConfig() *sim.SimulationConfig {
	cfg := &sim.SimulationConfig{
		Duration:        y.Simulation.Duration,
		MonitorInterval: y.Simulation.MonitorInterval,
		Datacenter: sim.DatacenterSpec{
			Name: y.Datacenter.Name,
		},
	}
	for _, n := range y.Datacenter.Nodes {
		ns := sim.NodeSpec{
			Name:                        n.Name,
			CPU:                         n.CPU,
			RAM:                         n.RAM,
			Disk:                        n.Disk,
			Bandwidth:                   n.Bandwidth,
			StartUpDelay:                n.StartUpDelay,
			CPUFluctuationPercent:       n.CPUFluctuationPercent,
			RAMFluctuationPercent:       n.RAMFluctuationPercent,
			DiskFluctuationPercent:      n.DiskFluctuationPercent,
			BandwidthFluctuationPercent: n.BandwidthFluctuationPercent,
			StopLackOfResource:          n.StopLackOfResource,
		}
		for _, c := range n.Containers {
			cs := sim.ContainerSpec{
				Name:                        c.Name,
				CPU:                         c.CPU,
				RAM:                         c.RAM,
				Disk:                        c.Disk,
				Bandwidth:                   c.Bandwidth,
				StartUpDelay:                c.StartUpDelay,
				CPUFluctuationPercent:       c.CPUFluctuationPercent,
				RAMFluctuationPercent:       c.RAMFluctuationPercent,
				DiskFluctuationPercent:      c.DiskFluctuationPercent,
				BandwidthFluctuationPercent: c.BandwidthFluctuationPercent,
			}
			for _, w := range c.Workloads {
				cs.Workloads = append(cs.Workloads, w.toSpec())
			}
			ns.Containers = append(ns.Containers, cs)
		}
		cfg.Datacenter.Nodes = append(cfg.Datacenter.Nodes, ns)
	}
	if y.LoadBalancer != nil {
		lb := &sim.LoadBalancerSpec{
			Enabled:            y.LoadBalancer.Enabled,
			Type:               y.LoadBalancer.Type,
			ReservationEnabled: y.LoadBalancer.ReservationEnabled,
			TargetContainers:   y.LoadBalancer.TargetContainers,
		}
		for _, w := range y.LoadBalancer.Workloads {
			lb.Workloads = append(lb.Workloads, w.toSpec())
		}
		cfg.LoadBalancer = lb
	}
	return cfg
}

func (w yamlWorkload) toSpec() sim.WorkloadSpec {
	return sim.WorkloadSpec{
		CPU:                         w.CPU,
		RAM:                         w.RAM,
		Disk:                        w.Disk,
		Bandwidth:                   w.Bandwidth,
		Delay:                       w.Delay,
		Duration:                    w.Duration,
		CPUFluctuationPercent:       w.CPUFluctuationPercent,
		RAMFluctuationPercent:       w.RAMFluctuationPercent,
		DiskFluctuationPercent:      w.DiskFluctuationPercent,
		BandwidthFluctuationPercent: w.BandwidthFluctuationPercent,
		Priority:                    w.Priority,
		Type:                        w.Type,
	}
}
