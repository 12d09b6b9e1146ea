package sim

import (
	"github.com/sirupsen/logrus"
)

// Load balancer type identifiers accepted in configuration.
const (
	LBTypeClassicFirstFit      = "classic-first-fit"
	LBTypeFirstFitReservations = "first-fit-with-reservations"
)

// LoadBalancer defines the interface for placing workloads onto containers.
type LoadBalancer interface {
	// Place selects the first container in targets that can host the
	// workload, scanning strictly in the given order. now is the decision
	// instant on the virtual clock; the workload's prospective interval is
	// [now+delay, now+delay+duration).
	// Returns the admitted container, or nil plus a rejection reason when no
	// target is feasible. Place never blocks and never retries.
	Place(now float64, w *Workload, targets []*Container) (*Container, string)

	// Type returns the configuration identifier of this balancer.
	Type() string
}

// NewLoadBalancer creates a load balancer of the specified type.
// reservationEnabled only matters for the reservation-capable type; the
// classic type always uses the instantaneous check.
func NewLoadBalancer(lbType string, reservationEnabled bool) LoadBalancer {
	switch lbType {
	case LBTypeClassicFirstFit:
		return NewFirstFitLoadBalancer(false)
	case LBTypeFirstFitReservations:
		return NewFirstFitLoadBalancer(reservationEnabled)
	default:
		logrus.Panicf("unknown load balancer type: %s", lbType)
		return nil
	}
}

// AvailableLoadBalancerTypes returns the list of supported type identifiers.
func AvailableLoadBalancerTypes() []string {
	return []string{LBTypeClassicFirstFit, LBTypeFirstFitReservations}
}
