package dag

import "gonum.org/v1/gonum/graph/simple"

// Graph is a directed graph of entry names. An edge from A to B means B depends
// on A. It is built once and is not safe for concurrent mutation.
type Graph struct {
	g *simple.DirectedGraph
	// ids maps a name to its gonum node ID; names is the reverse mapping.
	ids   map[string]int64
	names []string
	// selfLoops holds nodes that reference themselves. simple.DirectedGraph
	// rejects self edges, so they are tracked here and reported as cycles.
	selfLoops map[string]bool
}

// CycleError reports every cycle found in the graph.
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	return "cycle detected involving node '" + e.Cycles[0][0] + "'"
}
