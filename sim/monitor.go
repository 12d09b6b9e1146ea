// The Monitor keeps the append-only, time-ordered usage history recorded at
// every sampling tick, one series per entity. External consumers (the
// visualization tooling) read it after the run; it is never pruned.

package sim

// UsageSample is one recorded observation of an entity.
type UsageSample struct {
	Time      float64
	Usage     ResourceVector
	Available ResourceVector
}

// Monitor collects per-entity usage history at a fixed sampling period.
type Monitor struct {
	// Interval is the sampling period in virtual time units.
	Interval float64

	histories map[string][]UsageSample
	order     []string // entity IDs in first-seen order, for deterministic reports
}

// NewMonitor creates a Monitor with the given sampling period.
func NewMonitor(interval float64) *Monitor {
	return &Monitor{
		Interval:  interval,
		histories: make(map[string][]UsageSample),
	}
}

// Record appends a sample to the entity's history. Samples arrive in
// monotonically non-decreasing time order because only the engine's monitor
// tick calls this.
func (m *Monitor) Record(entity string, s UsageSample) {
	if _, ok := m.histories[entity]; !ok {
		m.order = append(m.order, entity)
	}
	m.histories[entity] = append(m.histories[entity], s)
}

// History returns the recorded samples for an entity, oldest first.
// The returned slice is the monitor's internal storage; callers must treat it
// as read-only.
func (m *Monitor) History(entity string) []UsageSample {
	return m.histories[entity]
}

// Entities returns the monitored entity IDs in first-seen order.
func (m *Monitor) Entities() []string {
	return m.order
}
