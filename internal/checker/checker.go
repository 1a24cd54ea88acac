// Package checker implements the type and ownership checker: a single
// forward walk over the surface AST that infers a types.Type for every
// expression, enforces assignability and ownership transitions, and
// accumulates diagnostics rather than aborting on the first error.
package checker

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/typedast"
	"github.com/zacolang/zaco/internal/types"
)

// logFn is the type of console.log/warn/error/info: one argument of any
// type, no return value. The host runtime renders the argument with its
// own formatter rather than the surface language overloading on arity.
var logFn = &types.Function{Params: []types.Type{types.Any}, Return: types.Void}

// consoleType is the structural type of the console global every module
// sees without an import, mirroring the host runtime's console object.
var consoleType = &types.Object{Properties: []types.ObjectProperty{
	{Name: "log", Type: logFn},
	{Name: "error", Type: logFn},
	{Name: "warn", Type: logFn},
	{Name: "info", Type: logFn},
}}

// Checker walks a file's AST, producing a TypedProgram and accumulating
// diagnostics. State carried across the walk mirrors the checker this was
// ported from: the environment, the enclosing function's declared return
// type (nil outside any function), and whether that function is async.
type Checker struct {
	Env   *checkenv.Env
	Diags *errs.Diagnostics

	currentReturnType types.Type
	inAsyncFunction   bool
}

func New() *Checker {
	c := &Checker{
		Env:   checkenv.New(),
		Diags: errs.NewDiagnostics(),
	}
	c.Env.Declare("console", checkenv.VarInfo{
		Type:          consoleType,
		Ownership:     checkenv.Borrowed,
		IsMutable:     false,
		IsInitialized: true,
	})
	return c
}

// CheckFile type-checks every top-level declaration in f, returning the
// typed program. Errors are accumulated on c.Diags rather than returned;
// check c.Diags.HasErrors() after calling.
func (c *Checker) CheckFile(f *ast.File) *typedast.TypedProgram {
	prog := &typedast.TypedProgram{Span: f.Span}

	for range f.Imports {
		prog.Items = append(prog.Items, typedast.ModuleItem{Kind: typedast.ItemImport})
	}

	for _, decl := range f.Decls {
		c.checkDecl(decl)
		prog.Items = append(prog.Items, typedast.ModuleItem{
			Kind: typedast.ItemDecl,
			Decl: &typedast.TypedDecl{Decl: decl, Span: decl.Position()},
		})
	}

	return prog
}

func (c *Checker) report(code, message string, span ast.Span) {
	c.Diags.Add(errs.New("checker", code, message, &span))
}
