package driver

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/errs"
)

// FileUnit pairs a parsed file with the absolute path it was resolved to,
// the unit of work the scheduler and pipeline both key on.
type FileUnit struct {
	Path string
	File *ast.File
}

// BuildDepGraph resolves every import of every file in units and records
// the resulting edges. A specifier that resolves to a builtin module
// becomes a node with no file behind it; CompileScheduled skips those.
func BuildDepGraph(units map[string]*FileUnit, resolver *ModuleResolver) (*DepGraph, error) {
	g := NewDepGraph()
	for path, unit := range units {
		g.AddNode(path)
		for _, imp := range unit.File.Imports {
			resolved, err := resolver.Resolve(imp.Path, path, imp.Span)
			if err != nil {
				return nil, err
			}
			g.AddEdge(path, resolved)
		}
	}
	return g, nil
}

// Schedule resolves every unit's imports, rejects a cyclic import graph,
// and returns the compile order Kahn's algorithm gives on the resulting
// acyclic graph.
func Schedule(units map[string]*FileUnit, resolver *ModuleResolver) ([]string, error) {
	g, err := BuildDepGraph(units, resolver)
	if err != nil {
		return nil, err
	}
	if cyc := g.DetectCycles(); cyc != nil {
		return nil, errs.Newf("driver", errs.RESCycleDetected, nil,
			"%s", cyc.Error()).WithData("cycle", cyc.Path)
	}
	return g.TopoSort(), nil
}
