package sim

// ResourceHolder is the shared shape of the two capacity-bearing levels of
// the hierarchy (Node and Container): a named, fixed capacity with a
// per-resource fluctuation percentage and a derived current usage.
// Composed into both levels so the aggregation and reporting code is written
// once against the interface.
type ResourceHolder interface {
	Name() string
	Capacity() ResourceVector
	CurrentUsage() ResourceVector
	Available() ResourceVector
	Running() bool
}

// holderBase carries the state common to Node and Container.
// Capacity and fluctuation percentages are immutable after construction;
// usage is recomputed at every sampling tick.
type holderBase struct {
	name         string
	capacity     ResourceVector
	fluctPct     ResourceVector
	startUpDelay float64

	running bool
	usage   ResourceVector
}

func (h *holderBase) Name() string { return h.name }

func (h *holderBase) Capacity() ResourceVector { return h.capacity }

func (h *holderBase) FluctuationPercent() ResourceVector { return h.fluctPct }

func (h *holderBase) StartUpDelay() float64 { return h.startUpDelay }

func (h *holderBase) CurrentUsage() ResourceVector { return h.usage }

// Available returns the current headroom, floored at zero per resource.
func (h *holderBase) Available() ResourceVector {
	return h.capacity.Sub(h.usage).ClampZero()
}

func (h *holderBase) Running() bool { return h.running }
