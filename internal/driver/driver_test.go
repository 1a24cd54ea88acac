package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacolang/zaco/internal/ast"
)

func numLit(v float64) *ast.Literal { return &ast.Literal{Kind: ast.LitExprNumber, Value: v} }

// writeUnits lays out a tiny two-file program on disk: base.ts exports
// `answer`, main.ts imports it and calls it from `main`.
func writeUnits(t *testing.T) (map[string]*FileUnit, string, string) {
	t.Helper()
	root := t.TempDir()
	basePath := filepath.Join(root, "base.ts")
	mainPath := filepath.Join(root, "main.ts")
	require.NoError(t, os.WriteFile(basePath, []byte("export function answer() { return 42; }"), 0o644))
	require.NoError(t, os.WriteFile(mainPath, []byte("import { answer } from './base'; function main() { return answer(); }"), 0o644))

	baseFile := &ast.File{
		Path: basePath,
		Decls: []ast.Decl{
			&ast.FuncDecl{
				Name:       "answer",
				IsExported: true,
				Return:     &ast.PrimitiveType{Kind: ast.PrimNumber},
				Body:       &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: numLit(42)}}},
			},
		},
	}
	mainFile := &ast.File{
		Path: mainPath,
		Imports: []*ast.ImportDecl{
			{Path: "./base", Symbols: []string{"answer"}},
		},
		Decls: []ast.Decl{
			&ast.FuncDecl{
				Name:   "main",
				Return: &ast.PrimitiveType{Kind: ast.PrimNumber},
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.Call{Callee: &ast.Identifier{Name: "answer"}}},
				}},
			},
		},
	}

	units := map[string]*FileUnit{
		basePath: {Path: basePath, File: baseFile},
		mainPath: {Path: mainPath, File: mainFile},
	}
	return units, basePath, mainPath
}

func TestCompileSchedulesBaseBeforeMainAndMergesBothFunctions(t *testing.T) {
	units, basePath, mainPath := writeUnits(t)
	resolver := NewModuleResolver(filepath.Dir(mainPath), nil)

	schedule, err := Schedule(units, resolver)
	require.NoError(t, err)

	pos := make(map[string]int, len(schedule))
	for i, p := range schedule {
		pos[p] = i
	}
	assert.Less(t, pos[basePath], pos[mainPath])

	merged, err := Compile(units, resolver, mainPath)
	require.NoError(t, err)

	main := merged.FindFunction("main")
	answer := merged.FindFunction("answer")
	require.NotNil(t, main)
	require.NotNil(t, answer)
	assert.NotEqual(t, main.Id, answer.Id)

	// answer is no longer extern once merged: main's call resolves to the
	// real definition folded in from base.ts.
	for _, ext := range merged.ExternFunctions {
		assert.NotEqual(t, "answer", ext.Name)
	}
}

func TestCompileRejectsImportCycle(t *testing.T) {
	root := t.TempDir()
	aPath := filepath.Join(root, "a.ts")
	bPath := filepath.Join(root, "b.ts")
	require.NoError(t, os.WriteFile(aPath, []byte("import './b';"), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte("import './a';"), 0o644))

	units := map[string]*FileUnit{
		aPath: {Path: aPath, File: &ast.File{Path: aPath, Imports: []*ast.ImportDecl{{Path: "./b"}}}},
		bPath: {Path: bPath, File: &ast.File{Path: bPath, Imports: []*ast.ImportDecl{{Path: "./a"}}}},
	}
	resolver := NewModuleResolver(root, nil)

	_, err := Schedule(units, resolver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RES003")
}

func TestMergeModulesFailsWithoutMainFunction(t *testing.T) {
	units, basePath, _ := writeUnits(t)
	single := map[string]*FileUnit{basePath: units[basePath]}
	resolver := NewModuleResolver(filepath.Dir(basePath), nil)

	_, err := Compile(single, resolver, basePath)
	require.Error(t, err)
}
