package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeAndEdge(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("A")
	g.AddNode("B")
	g.AddNode("A")
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has("A"))
	assert.False(t, g.Has("C"))

	require.NoError(t, g.AddEdge("A", "B"))

	deps, err := g.Dependencies("B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, deps)

	assert.Error(t, g.AddEdge("A", "missing"))
	assert.Error(t, g.AddEdge("missing", "A"))
	_, err = g.Dependencies("missing")
	assert.Error(t, err)
}

func TestOrder_IsTopologicalAndStable(t *testing.T) {
	t.Parallel()
	build := func(nodes []string) *Graph {
		g := New()
		for _, n := range nodes {
			g.AddNode(n)
		}
		// km depends on meters, speed depends on km and seconds.
		require.NoError(t, g.AddEdge("meters", "km"))
		require.NoError(t, g.AddEdge("km", "speed"))
		require.NoError(t, g.AddEdge("seconds", "speed"))
		return g
	}

	a, cyclesA := build([]string{"speed", "km", "meters", "seconds"}).Order()
	b, cyclesB := build([]string{"seconds", "meters", "km", "speed"}).Order()

	assert.Empty(t, cyclesA)
	assert.Empty(t, cyclesB)
	assert.Equal(t, a, b)
	assert.Len(t, a, 4)

	pos := make(map[string]int)
	for i, n := range a {
		pos[n] = i
	}
	assert.Less(t, pos["meters"], pos["km"])
	assert.Less(t, pos["km"], pos["speed"])
	assert.Less(t, pos["seconds"], pos["speed"])
}

func TestOrder_ReportsCycles(t *testing.T) {
	t.Parallel()
	g := New()
	for _, n := range []string{"a", "b", "c", "self", "free"} {
		g.AddNode(n)
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))
	// c depends on the cycle but is not part of it.
	require.NoError(t, g.AddEdge("a", "c"))
	require.NoError(t, g.AddEdge("self", "self"))

	order, cycles := g.Order()
	assert.Equal(t, [][]string{{"a", "b"}, {"self"}}, cycles)
	assert.Contains(t, order, "free")
	assert.Contains(t, order, "c")
	assert.NotContains(t, order, "a")
	assert.NotContains(t, order, "self")

	deps, err := g.Dependencies("self")
	require.NoError(t, err)
	assert.Equal(t, []string{"self"}, deps)
}

func TestDetectCycles(t *testing.T) {
	t.Parallel()
	t.Run("acyclic", func(t *testing.T) {
		g := New()
		g.AddNode("A")
		g.AddNode("B")
		require.NoError(t, g.AddEdge("A", "B"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("cyclic", func(t *testing.T) {
		g := New()
		g.AddNode("A")
		g.AddNode("B")
		g.AddNode("C")
		require.NoError(t, g.AddEdge("A", "B"))
		require.NoError(t, g.AddEdge("B", "C"))
		require.NoError(t, g.AddEdge("C", "A"))

		err := g.DetectCycles()
		require.Error(t, err)
		var cerr *CycleError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, [][]string{{"A", "B", "C"}}, cerr.Cycles)
		assert.Contains(t, err.Error(), "cycle detected")
	})
}

func TestSubgraph(t *testing.T) {
	t.Parallel()
	g := New()
	for _, n := range []string{"a", "b", "c", "d"} {
		g.AddNode(n)
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("d", "c"))

	sub := g.Subgraph([]string{"a", "b", "c"})
	assert.Equal(t, 3, sub.Len())
	assert.False(t, sub.Has("d"))
	assert.Equal(t, [][]string{{"a", "b"}}, sub.Cycles())

	deps, err := sub.Dependencies("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, deps)
}
