// Package typedast wraps surface AST nodes with the types the checker
// inferred for them; internal/checker's CheckFile returns a TypedProgram.
// internal/lower does not read it: the lowerer walks the surface *ast.File
// and derives each MIR type from the source annotations itself, so a type
// the checker inferred for an unannotated binding does not reach it.
package typedast

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/types"
)

// TypedExpr pairs a surface expression with its checked type.
type TypedExpr struct {
	Expr ast.Expr
	Type types.Type
	Span ast.Span
}

// TypedStmt pairs a surface statement with the span the checker visited
// it at. Most statements carry no type of their own; where one of their
// sub-expressions does, that expression is itself a TypedExpr reachable
// from Stmt.
type TypedStmt struct {
	Stmt ast.Stmt
	Span ast.Span
}

// TypedDecl pairs a surface declaration with the span the checker visited
// it at.
type TypedDecl struct {
	Decl ast.Decl
	Span ast.Span
}

// ModuleItemKind discriminates the closed sum of items a checked program
// may contain at module scope.
type ModuleItemKind int

const (
	ItemImport ModuleItemKind = iota
	ItemExport
	ItemStmt
	ItemDecl
)

// ModuleItem is one top-level item of a TypedProgram.
type ModuleItem struct {
	Kind ModuleItemKind
	Stmt *TypedStmt // ItemStmt
	Decl *TypedDecl // ItemDecl
}

// TypedProgram is the complete output of checking one file: every
// top-level item, in source order, with types attached where the checker
// produced one.
type TypedProgram struct {
	Items []ModuleItem
	Span  ast.Span
}
