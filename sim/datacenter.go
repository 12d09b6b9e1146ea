package sim

import "fmt"

// Datacenter owns the set of nodes and is the aggregation root for
// reporting. Entity names are unique: node names within the datacenter,
// container names across the whole datacenter (load balancer targets are
// resolved by bare container name).
type Datacenter struct {
	name  string
	nodes []*Node

	containersByName map[string]*Container
}

// NewDatacenter creates an empty datacenter.
func NewDatacenter(name string) *Datacenter {
	return &Datacenter{
		name:             name,
		containersByName: make(map[string]*Container),
	}
}

// Name returns the datacenter name.
func (dc *Datacenter) Name() string { return dc.name }

// Nodes returns the nodes in attachment order.
func (dc *Datacenter) Nodes() []*Node { return dc.nodes }

// AddNode attaches a node and indexes its containers. Construction-time only;
// duplicate names are a configuration error caught by validation, so this
// returns an error rather than panicking.
func (dc *Datacenter) AddNode(n *Node) error {
	for _, existing := range dc.nodes {
		if existing.Name() == n.Name() {
			return fmt.Errorf("duplicate node name %q", n.Name())
		}
	}
	for _, c := range n.Containers() {
		if _, ok := dc.containersByName[c.Name()]; ok {
			return fmt.Errorf("duplicate container name %q", c.Name())
		}
		dc.containersByName[c.Name()] = c
	}
	dc.nodes = append(dc.nodes, n)
	return nil
}

// ContainerByName resolves a container anywhere in the datacenter.
func (dc *Datacenter) ContainerByName(name string) (*Container, bool) {
	c, ok := dc.containersByName[name]
	return c, ok
}

// TotalCapacity returns the summed capacity of all nodes.
func (dc *Datacenter) TotalCapacity() ResourceVector {
	var total ResourceVector
	for _, n := range dc.nodes {
		total = total.Add(n.Capacity())
	}
	return total
}

// TotalUsage returns the summed last-sampled usage of all nodes.
func (dc *Datacenter) TotalUsage() ResourceVector {
	var total ResourceVector
	for _, n := range dc.nodes {
		total = total.Add(n.CurrentUsage())
	}
	return total
}
