// Defines the ResourceVector value type shared by every entity in the
// hierarchy. Capacities, demands, usages and fluctuation magnitudes all use
// the same four-component shape; arithmetic is strictly componentwise.

package sim

import (
	"fmt"
	"math"
)

// ResourceVector is a 4-tuple of independent resource quantities:
// CPU in cores, RAM and Disk in MB, Bandwidth in Mbps.
// There is no cross-resource coupling anywhere in the model.
type ResourceVector struct {
	CPU       float64
	RAM       float64
	Disk      float64
	Bandwidth float64
}

// Add returns the componentwise sum of rv and other.
func (rv ResourceVector) Add(other ResourceVector) ResourceVector {
	return ResourceVector{
		CPU:       rv.CPU + other.CPU,
		RAM:       rv.RAM + other.RAM,
		Disk:      rv.Disk + other.Disk,
		Bandwidth: rv.Bandwidth + other.Bandwidth,
	}
}

// Sub returns the componentwise difference rv - other.
func (rv ResourceVector) Sub(other ResourceVector) ResourceVector {
	return ResourceVector{
		CPU:       rv.CPU - other.CPU,
		RAM:       rv.RAM - other.RAM,
		Disk:      rv.Disk - other.Disk,
		Bandwidth: rv.Bandwidth - other.Bandwidth,
	}
}

// Fits reports whether rv is componentwise less than or equal to other.
// This is the admission comparison: demand.Fits(available).
func (rv ResourceVector) Fits(other ResourceVector) bool {
	return rv.CPU <= other.CPU &&
		rv.RAM <= other.RAM &&
		rv.Disk <= other.Disk &&
		rv.Bandwidth <= other.Bandwidth
}

// Max returns the componentwise maximum of rv and other.
func (rv ResourceVector) Max(other ResourceVector) ResourceVector {
	return ResourceVector{
		CPU:       math.Max(rv.CPU, other.CPU),
		RAM:       math.Max(rv.RAM, other.RAM),
		Disk:      math.Max(rv.Disk, other.Disk),
		Bandwidth: math.Max(rv.Bandwidth, other.Bandwidth),
	}
}

// ClampZero returns rv with every negative component raised to zero.
func (rv ResourceVector) ClampZero() ResourceVector {
	return ResourceVector{
		CPU:       math.Max(0, rv.CPU),
		RAM:       math.Max(0, rv.RAM),
		Disk:      math.Max(0, rv.Disk),
		Bandwidth: math.Max(0, rv.Bandwidth),
	}
}

// Abs returns rv with every component replaced by its absolute value.
func (rv ResourceVector) Abs() ResourceVector {
	return ResourceVector{
		CPU:       math.Abs(rv.CPU),
		RAM:       math.Abs(rv.RAM),
		Disk:      math.Abs(rv.Disk),
		Bandwidth: math.Abs(rv.Bandwidth),
	}
}

// AnyNegative reports whether any component of rv is below zero.
func (rv ResourceVector) AnyNegative() bool {
	return rv.CPU < 0 || rv.RAM < 0 || rv.Disk < 0 || rv.Bandwidth < 0
}

// IsZero reports whether every component of rv is exactly zero.
func (rv ResourceVector) IsZero() bool {
	return rv == ResourceVector{}
}

func (rv ResourceVector) String() string {
	return fmt.Sprintf("CPU=%.2f RAM=%.0f Disk=%.0f BW=%.0f",
		rv.CPU, rv.RAM, rv.Disk, rv.Bandwidth)
}

// ExceededResources lists, resource by resource, where demand exceeds limit.
// Used to build human-readable rejection and hard-stop messages.
func ExceededResources(demand, limit ResourceVector) []string {
	var out []string
	if demand.CPU > limit.CPU {
		out = append(out, fmt.Sprintf("CPU (required %.2f, available %.2f)", demand.CPU, limit.CPU))
	}
	if demand.RAM > limit.RAM {
		out = append(out, fmt.Sprintf("RAM (required %.0f MB, available %.0f MB)", demand.RAM, limit.RAM))
	}
	if demand.Disk > limit.Disk {
		out = append(out, fmt.Sprintf("Disk (required %.0f MB, available %.0f MB)", demand.Disk, limit.Disk))
	}
	if demand.Bandwidth > limit.Bandwidth {
		out = append(out, fmt.Sprintf("Bandwidth (required %.0f Mbps, available %.0f Mbps)", demand.Bandwidth, limit.Bandwidth))
	}
	return out
}
