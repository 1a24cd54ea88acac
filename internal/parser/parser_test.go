package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacolang/zaco/internal/ast"
)

func TestParseConstDeclAndCallMatchesScenarioS1(t *testing.T) {
	// S1: const x: number = 42; console.log(x); — wrapped in main() since
	// internal/ast.File only carries top-level declarations, not bare
	// statements; the driver requires an explicit entry function (see
	// internal/driver.MergeModules).
	f, err := Parse(`function main(): void { const x: number = 42; console.log(x); }`, "s1.ts")
	require.NoError(t, err)
	require.Len(t, f.Decls, 1)

	fn, ok := f.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Len(t, fn.Body.Stmts, 2)

	decl, ok := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	require.True(t, ok)
	assert.Equal(t, ast.VarConst, decl.Kind)
	require.Len(t, decl.Declarations, 1)
	ip, ok := decl.Declarations[0].Pattern.(*ast.IdentPattern)
	require.True(t, ok)
	assert.Equal(t, "x", ip.Name)
	prim, ok := ip.Type.(*ast.PrimitiveType)
	require.True(t, ok)
	assert.Equal(t, ast.PrimNumber, prim.Kind)

	exprStmt, ok := fn.Body.Stmts[1].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.Expr.(*ast.Call)
	require.True(t, ok)
	member, ok := call.Callee.(*ast.Member)
	require.True(t, ok)
	assert.Equal(t, "log", member.Property)
}

func TestParseFunctionDeclMatchesScenarioS2(t *testing.T) {
	// S2: function f(a: number, b: number): number { return a + b; }
	f, err := Parse(`function f(a: number, b: number): number { return a + b; }`, "s2.ts")
	require.NoError(t, err)
	require.Len(t, f.Decls, 1)

	fn, ok := f.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParseStringConcatMatchesScenarioS3(t *testing.T) {
	f, err := Parse(`let s: string = "a" + "b";`, "s3.ts")
	require.NoError(t, err)
	decl := f.Decls[0].(*ast.VarDecl)
	bin := decl.Stmt.Declarations[0].Init.(*ast.BinaryOp)
	assert.Equal(t, "+", bin.Op)
	lhs := bin.Left.(*ast.Literal)
	assert.Equal(t, ast.LitExprString, lhs.Kind)
	assert.Equal(t, "a", lhs.Value)
}

func TestParseOwnedLetMarksOwnership(t *testing.T) {
	// S4: owned let a: string = "x"; let b = a;
	f, err := Parse(`owned let a: string = "x"; let b = a;`, "s4.ts")
	require.NoError(t, err)
	require.Len(t, f.Decls, 2)

	decl := f.Decls[0].(*ast.VarDecl)
	ip := decl.Stmt.Declarations[0].Pattern.(*ast.IdentPattern)
	require.NotNil(t, ip.Ownership)
	assert.Equal(t, ast.OwnershipOwned, ip.Ownership.Kind)
}

func TestParseAsyncFunctionAndAwaitMatchesScenarioS6(t *testing.T) {
	f, err := Parse(`async function g(): Promise<number> { return 7; }
function main(): void { console.log(await g()); }`, "s6.ts")
	require.NoError(t, err)
	fn := f.Decls[0].(*ast.FuncDecl)
	assert.True(t, fn.IsAsync)
	promiseType, ok := fn.Return.(*ast.PromiseType)
	require.True(t, ok)
	prim := promiseType.Inner.(*ast.PrimitiveType)
	assert.Equal(t, ast.PrimNumber, prim.Kind)

	main := f.Decls[1].(*ast.FuncDecl)
	exprStmt := main.Body.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.Call)
	member := call.Callee.(*ast.Member)
	await := call.Args[0].(*ast.Await)
	assert.Equal(t, "log", member.Property)
	_, ok = await.Expr.(*ast.Call)
	assert.True(t, ok)
}

func TestParseImportDecl(t *testing.T) {
	f, err := Parse(`import { answer } from "./base";`, "main.ts")
	require.NoError(t, err)
	require.Len(t, f.Imports, 1)
	assert.Equal(t, "./base", f.Imports[0].Path)
	assert.Equal(t, []string{"answer"}, f.Imports[0].Symbols)
}

func TestParseIfWhileForControlFlow(t *testing.T) {
	src := `
function loop(): number {
  let total: number = 0;
  for (let i: number = 0; i < 10; i = i + 1) {
    if (i > 5) {
      total = total + i;
    } else {
      continue;
    }
  }
  while (total > 100) {
    total = total - 1;
  }
  return total;
}`
	f, err := Parse(src, "loop.ts")
	require.NoError(t, err)
	fn := f.Decls[0].(*ast.FuncDecl)
	assert.Len(t, fn.Body.Stmts, 4)
	_, ok := fn.Body.Stmts[1].(*ast.ForStmt)
	assert.True(t, ok)
	_, ok = fn.Body.Stmts[2].(*ast.WhileStmt)
	assert.True(t, ok)
}

func TestParseArrowFunctionExpression(t *testing.T) {
	f, err := Parse(`const add = (a: number, b: number): number => a + b;`, "arrow.ts")
	require.NoError(t, err)
	decl := f.Decls[0].(*ast.VarDecl)
	fn, ok := decl.Stmt.Declarations[0].Init.(*ast.FunctionExpr)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Stmts, 1)
	_, ok = fn.Body.Stmts[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseClassWithFieldAndMethod(t *testing.T) {
	src := `class Box { value: number; get(): number { return this.value; } }`
	f, err := Parse(src, "box.ts")
	require.NoError(t, err)
	cd := f.Decls[0].(*ast.ClassDecl)
	assert.Equal(t, "Box", cd.Name)
	require.Len(t, cd.Fields, 1)
	require.Len(t, cd.Methods, 1)
	assert.Equal(t, "get", cd.Methods[0].Name)
}
