package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		g:         simple.NewDirectedGraph(),
		ids:       make(map[string]int64),
		selfLoops: make(map[string]bool),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.ids[id]; ok {
		return
	}
	nid := int64(len(g.names))
	g.ids[id] = nid
	g.names = append(g.names, id)
	g.g.AddNode(simple.Node(nid))
}

// Has reports whether the node exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.ids[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.names) }

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist. A self-referential edge is recorded as a
// one-node cycle.
func (g *Graph) AddEdge(fromID, toID string) error {
	from, ok := g.ids[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	to, ok := g.ids[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	if from == to {
		g.selfLoops[fromID] = true
		return nil
	}
	g.g.SetEdge(g.g.NewEdge(simple.Node(from), simple.Node(to)))
	return nil
}

// Dependencies returns the sorted IDs of the nodes the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	nid, ok := g.ids[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	deps := g.collect(g.g.To(nid))
	if g.selfLoops[id] {
		deps = append(deps, id)
		slices.Sort(deps)
	}
	return deps, nil
}

// Order returns every node that is not part of a cycle in dependency order,
// breaking ties by name, together with the cycles themselves. Nodes that merely
// depend on a cycle are still listed in order; callers decide what to do with
// them.
func (g *Graph) Order() (order []string, cycles [][]string) {
	sorted, err := topo.SortStabilized(g.g, g.byName)

	var unorderable topo.Unorderable
	if err != nil && !errors.As(err, &unorderable) {
		// SortStabilized only ever reports Unorderable.
		panic(fmt.Sprintf("dag: unexpected sort error: %v", err))
	}
	for _, component := range unorderable {
		cycles = append(cycles, g.namesOf(component))
	}

	for _, n := range sorted {
		if n == nil {
			// Placeholder for a cyclic component.
			continue
		}
		name := g.names[n.ID()]
		if g.selfLoops[name] {
			cycles = append(cycles, []string{name})
			continue
		}
		order = append(order, name)
	}
	sortCycles(cycles)
	return order, cycles
}

// Cycles returns every strongly connected component that forms a cycle,
// including self-references, each sorted by name.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, component := range topo.TarjanSCC(g.g) {
		if len(component) > 1 {
			cycles = append(cycles, g.namesOf(component))
		}
	}
	for name := range g.selfLoops {
		cycles = append(cycles, []string{name})
	}
	sortCycles(cycles)
	return cycles
}

// DetectCycles checks the graph for any cycles. It returns a *CycleError
// listing all of them, or nil.
func (g *Graph) DetectCycles() error {
	cycles := g.Cycles()
	if len(cycles) == 0 {
		return nil
	}
	return &CycleError{Cycles: cycles}
}

// Subgraph returns the graph induced by the given nodes. The resolver uses it
// to find the cycles among entries it could not evaluate.
func (g *Graph) Subgraph(ids []string) *Graph {
	sub := New()
	for _, id := range ids {
		if g.Has(id) {
			sub.AddNode(id)
		}
	}
	for _, id := range ids {
		deps, err := g.Dependencies(id)
		if err != nil {
			continue
		}
		for _, dep := range deps {
			if sub.Has(dep) {
				// Both ends exist in sub, so AddEdge cannot fail.
				_ = sub.AddEdge(dep, id)
			}
		}
	}
	return sub
}

func (g *Graph) byName(nodes []graph.Node) {
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		return strings.Compare(g.names[a.ID()], g.names[b.ID()])
	})
}

func (g *Graph) collect(it graph.Nodes) []string {
	var out []string
	for it.Next() {
		out = append(out, g.names[it.Node().ID()])
	}
	slices.Sort(out)
	return out
}

func (g *Graph) namesOf(nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = g.names[n.ID()]
	}
	slices.Sort(out)
	return out
}

func sortCycles(cycles [][]string) {
	slices.SortFunc(cycles, slices.Compare[[]string])
}
