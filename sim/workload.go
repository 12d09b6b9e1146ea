// Defines the Workload struct that models a timed, transient resource demand
// hosted by a container. Tracks demand, delay/duration, lifecycle state and
// the timestamps needed for final reporting.

package sim

import (
	"fmt"
	"math/rand"
)

// WorkloadState represents the lifecycle state of a workload.
type WorkloadState string

const (
	StatePending   WorkloadState = "pending"
	StateRunning   WorkloadState = "running"
	StateCompleted WorkloadState = "completed"
	StateRejected  WorkloadState = "rejected"
)

// Terminal reports whether s is a sticky end state.
func (s WorkloadState) Terminal() bool {
	return s == StateCompleted || s == StateRejected
}

// Workload models a single workload's lifecycle in the simulation.
// A workload occupies exactly one container for its entire running lifetime;
// it never migrates.
type Workload struct {
	ID string // Unique identifier for the workload

	Demand             ResourceVector // Base resource demand
	FluctuationPercent ResourceVector // Demand variability, percent per resource
	Delay              float64        // Time from injection until the admission attempt
	Duration           float64        // Time occupying resources once admitted
	Priority           int            // Informational only; never reorders admission or preempts
	Type               string         // Free-text label (e.g. "User Request")

	State         WorkloadState
	CurrentDemand ResourceVector // Last sampled demand while running
	Container     *Container     // Host container, set at admission
	RejectReason  string         // Populated when State == StateRejected

	AdmittedAt float64
	FinishedAt float64 // Completion or rejection time

	rng *rand.Rand // Per-workload demand stream
}

// SampleDemand draws a fresh current demand around the base demand.
// Independent draw every call; never a running random walk.
func (w *Workload) SampleDemand() ResourceVector {
	w.CurrentDemand = DemandDraw(w.rng, w.Demand, w.FluctuationPercent)
	return w.CurrentDemand
}

// MarkRunning transitions Pending -> Running. No-op once terminal.
func (w *Workload) MarkRunning(c *Container, now float64) {
	if w.State.Terminal() || w.State == StateRunning {
		return
	}
	w.State = StateRunning
	w.Container = c
	w.AdmittedAt = now
}

// MarkCompleted transitions Running -> Completed. No-op once terminal.
func (w *Workload) MarkCompleted(now float64) {
	if w.State.Terminal() {
		return
	}
	w.State = StateCompleted
	w.FinishedAt = now
}

// MarkRejected moves the workload to its terminal Rejected state.
// Also used when a node hard-stop kills a running workload; terminal states
// are sticky, so repeated calls are no-ops.
func (w *Workload) MarkRejected(now float64, reason string) {
	if w.State.Terminal() {
		return
	}
	w.State = StateRejected
	w.FinishedAt = now
	w.RejectReason = reason
}

// This method returns a human-readable string representation of a Workload.
func (w Workload) String() string {
	return fmt.Sprintf("Workload: (ID: %s, Type: %s, State: %s, Demand: [%s], Delay: %.2f, Duration: %.2f, Priority: %d)",
		w.ID, w.Type, w.State, w.Demand, w.Delay, w.Duration, w.Priority)
}
