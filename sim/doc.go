// Package sim provides the discrete-event simulation core of ContSysSim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - simulator.go: the (time, sequence)-ordered event loop and the monitor pass
//   - event.go: the event types that drive every entity lifecycle
//   - workload.go: the workload state machine (pending → running → completed/rejected)
//
// # Architecture
//
// The hierarchy is Datacenter → Node → Container → Workload. Nodes and
// containers share the ResourceHolder shape (entity.go): a fixed four-resource
// capacity (resources.go) with a randomized fluctuation overlay
// (fluctuation.go) and a usage recomputed at every monitor tick.
//
// Placement is first-fit (firstfit.go) behind the LoadBalancer interface
// (loadbalancer.go), either as an instantaneous capacity check or as an
// interval-aware check over per-container reservation calendars
// (reservation.go).
//
// Everything random flows from a single seeded PartitionedRNG (rng.go), one
// stream per entity, which together with deterministic same-timestamp event
// ordering makes whole runs reproducible for a fixed seed and input graph.
package sim
