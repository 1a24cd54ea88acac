// Package driver implements the multi-file compile pipeline: module
// resolution, dependency scheduling, per-file check/lower, and merging
// per-file MIR modules into one program-wide IrModule.
package driver

import "sort"

// DepGraph is a directed graph of absolute file paths, edges pointing from
// an importer to its imports. It is built incrementally as files are
// discovered during resolution.
type DepGraph struct {
	edges map[string][]string
	nodes map[string]bool
}

func NewDepGraph() *DepGraph {
	return &DepGraph{
		edges: make(map[string][]string),
		nodes: make(map[string]bool),
	}
}

// AddNode registers a file even if it has no outgoing edges (a leaf with no
// imports still needs to appear in the schedule).
func (g *DepGraph) AddNode(path string) {
	g.nodes[path] = true
	if _, ok := g.edges[path]; !ok {
		g.edges[path] = nil
	}
}

// AddEdge records that from imports to. Both ends are registered as nodes.
func (g *DepGraph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[from] = append(g.edges[from], to)
}

// CycleError names a dependency cycle as the ordered sequence of files that
// form it, closing back on the first element.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	msg := "dependency cycle detected: "
	for i, p := range e.Path {
		if i > 0 {
			msg += " -> "
		}
		msg += p
	}
	return msg
}

// DetectCycles walks the graph with a recursion-stack set and returns the
// first cycle found, or nil if the graph is acyclic.
func (g *DepGraph) DetectCycles() *CycleError {
	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	var path []string

	var dfs func(node string) *CycleError
	dfs = func(node string) *CycleError {
		visited[node] = true
		inStack[node] = true
		path = append(path, node)

		for _, dep := range g.edges[node] {
			if inStack[dep] {
				cycleStart := 0
				for i, p := range path {
					if p == dep {
						cycleStart = i
						break
					}
				}
				cycle := append(append([]string{}, path[cycleStart:]...), dep)
				return &CycleError{Path: cycle}
			}
			if !visited[dep] {
				if err := dfs(dep); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		inStack[node] = false
		return nil
	}

	// Sorted iteration keeps cycle-detection order deterministic across
	// runs, which matters for stable error messages.
	for _, node := range g.sortedNodes() {
		if !visited[node] {
			if err := dfs(node); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopoSort schedules the graph with Kahn's algorithm: compile order is
// dependencies-first. Callers must run DetectCycles first — TopoSort
// assumes an acyclic graph and silently drops unreachable-via-in-degree
// nodes if one remains.
func (g *DepGraph) TopoSort() []string {
	inDegree := make(map[string]int)
	for node := range g.nodes {
		inDegree[node] = 0
	}
	// A node's in-degree here is its import count, not its importer count:
	// it can only be scheduled once every file it depends on already has
	// been. dependents inverts edges so finishing a node can decrement its
	// dependents' counts.
	dependents := make(map[string][]string)
	for node, deps := range g.edges {
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], node)
			inDegree[node]++
		}
	}

	var queue []string
	for _, node := range g.sortedNodes() {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var sorted []string
	for len(queue) > 0 {
		sort.Strings(queue)
		node := queue[0]
		queue = queue[1:]
		sorted = append(sorted, node)

		for _, dependent := range dependents[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return sorted
}

func (g *DepGraph) sortedNodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}
