package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSortOrdersDependenciesBeforeDependents(t *testing.T) {
	g := NewDepGraph()
	g.AddEdge("main.ts", "util.ts")
	g.AddEdge("util.ts", "base.ts")

	require.Nil(t, g.DetectCycles())
	sorted := g.TopoSort()

	pos := make(map[string]int, len(sorted))
	for i, n := range sorted {
		pos[n] = i
	}
	assert.Less(t, pos["base.ts"], pos["util.ts"])
	assert.Less(t, pos["util.ts"], pos["main.ts"])
}

func TestTopoSortSchedulesDiamondDependencyOnce(t *testing.T) {
	g := NewDepGraph()
	g.AddEdge("main.ts", "left.ts")
	g.AddEdge("main.ts", "right.ts")
	g.AddEdge("left.ts", "base.ts")
	g.AddEdge("right.ts", "base.ts")

	sorted := g.TopoSort()
	assert.Len(t, sorted, 4)

	pos := make(map[string]int, len(sorted))
	for i, n := range sorted {
		pos[n] = i
	}
	assert.Less(t, pos["base.ts"], pos["left.ts"])
	assert.Less(t, pos["base.ts"], pos["right.ts"])
	assert.Less(t, pos["left.ts"], pos["main.ts"])
	assert.Less(t, pos["right.ts"], pos["main.ts"])
}

func TestDetectCyclesFindsDirectCycle(t *testing.T) {
	g := NewDepGraph()
	g.AddEdge("a.ts", "b.ts")
	g.AddEdge("b.ts", "a.ts")

	cyc := g.DetectCycles()
	require.NotNil(t, cyc)
	assert.Contains(t, cyc.Error(), "a.ts")
	assert.Contains(t, cyc.Error(), "b.ts")
}

func TestDetectCyclesIsNilOnAcyclicGraph(t *testing.T) {
	g := NewDepGraph()
	g.AddEdge("a.ts", "b.ts")
	g.AddNode("c.ts")

	assert.Nil(t, g.DetectCycles())
}

func TestAddNodeRegistersIsolatedLeafWithNoImports(t *testing.T) {
	g := NewDepGraph()
	g.AddNode("lonely.ts")

	sorted := g.TopoSort()
	assert.Equal(t, []string{"lonely.ts"}, sorted)
}
