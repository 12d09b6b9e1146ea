// Aggregates run-wide outcomes for final reporting: terminal workload counts,
// hard-stops, invariant violations, and per-entity utilization statistics
// over the monitor history.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	AdmittedWorkloads   int      // Admissions committed (later completion or kill included)
	RejectedWorkloads   int      // Terminal rejections, admission failures and hard-stop kills
	CompletedWorkloads  int      // Workloads that ran their full duration
	InvariantViolations int      // Capacity breaches on entities not configured to stop
	HardStoppedNodes    []string // Nodes terminated by resource exhaustion
	EndedAt             float64  // Virtual time the run ended at
}

// NewMetrics returns a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// PrintReport displays the end-of-run summary: datacenter totals, terminal
// workload states, and utilization statistics per monitored entity.
func (sim *Simulator) PrintReport() {
	m := sim.Metrics
	dc := sim.Datacenter

	fmt.Println("=== Simulation Report ===")
	fmt.Printf("Datacenter           : %s (%d nodes)\n", dc.Name(), len(dc.Nodes()))
	fmt.Printf("Total capacity       : %s\n", dc.TotalCapacity())
	fmt.Printf("Final usage          : %s\n", dc.TotalUsage())
	fmt.Printf("Ended at             : %.2f\n", m.EndedAt)
	fmt.Printf("Workloads admitted   : %d\n", m.AdmittedWorkloads)
	fmt.Printf("Workloads completed  : %d\n", m.CompletedWorkloads)
	fmt.Printf("Workloads rejected   : %d\n", m.RejectedWorkloads)
	fmt.Printf("Invariant violations : %d\n", m.InvariantViolations)
	if len(m.HardStoppedNodes) > 0 {
		fmt.Printf("Hard-stopped nodes   : %v\n", m.HardStoppedNodes)
	}

	fmt.Println("--- Workloads ---")
	for _, w := range sim.Workloads {
		line := fmt.Sprintf("%-14s %-12s prio=%d type=%q", w.ID, w.State, w.Priority, w.Type)
		if w.State == StateRejected {
			line += " reason=" + w.RejectReason
		}
		fmt.Println(line)
	}

	fmt.Println("--- Utilization (CPU cores / RAM MB) ---")
	for _, entity := range sim.Monitor.Entities() {
		history := sim.Monitor.History(entity)
		if len(history) == 0 {
			continue
		}
		cpu := make([]float64, len(history))
		ram := make([]float64, len(history))
		for i, s := range history {
			cpu[i] = s.Usage.CPU
			ram[i] = s.Usage.RAM
		}
		fmt.Printf("%-20s CPU mean=%.2f sd=%.2f p95=%.2f | RAM mean=%.0f sd=%.0f p95=%.0f (%d samples)\n",
			entity,
			stat.Mean(cpu, nil), stat.StdDev(cpu, nil), percentile(cpu, 0.95),
			stat.Mean(ram, nil), stat.StdDev(ram, nil), percentile(ram, 0.95),
			len(history))
	}
}

// percentile returns the empirical p-quantile of xs.
func percentile(xs []float64, p float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
