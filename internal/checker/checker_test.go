package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/types"
)

func TestCheckFuncDeclDeclaresFunctionType(t *testing.T) {
	c := New()
	f := &ast.File{
		Decls: []ast.Decl{
			&ast.FuncDecl{
				Name: "add",
				Params: []ast.Param{
					{Pattern: &ast.IdentPattern{Name: "a", Type: &ast.PrimitiveType{Kind: ast.PrimNumber}}},
					{Pattern: &ast.IdentPattern{Name: "b", Type: &ast.PrimitiveType{Kind: ast.PrimNumber}}},
				},
				Return: &ast.PrimitiveType{Kind: ast.PrimNumber},
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.BinaryOp{Op: "+", Left: &ast.Identifier{Name: "a"}, Right: &ast.Identifier{Name: "b"}}},
				}},
				IsExported: true,
			},
		},
	}

	c.CheckFile(f)
	require.False(t, c.Diags.HasErrors())

	info, ok := c.Env.Lookup("add")
	require.True(t, ok)
	fn, ok := info.Type.(*types.Function)
	require.True(t, ok)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, types.Number, fn.Return)

	_, exported := c.Env.Export("add")
	assert.True(t, exported)
}

func TestReturnTypeMismatchReported(t *testing.T) {
	c := New()
	f := &ast.File{
		Decls: []ast.Decl{
			&ast.FuncDecl{
				Name:   "bad",
				Return: &ast.PrimitiveType{Kind: ast.PrimNumber},
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.Literal{Kind: ast.LitExprString, Value: "oops"}},
				}},
			},
		},
	}
	c.CheckFile(f)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.TypeMismatch, c.Diags.Reports()[0].Code)
}

func TestAsyncReturnUnwrapsPromise(t *testing.T) {
	c := New()
	f := &ast.File{
		Decls: []ast.Decl{
			&ast.FuncDecl{
				Name:    "fetchNum",
				Return:  &ast.PrimitiveType{Kind: ast.PrimNumber},
				IsAsync: true,
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.Literal{Kind: ast.LitExprNumber, Value: 1.0}},
				}},
			},
		},
	}
	c.CheckFile(f)
	assert.False(t, c.Diags.HasErrors())

	info, _ := c.Env.Lookup("fetchNum")
	fn := info.Type.(*types.Function)
	_, isPromise := fn.Return.(*types.Promise)
	assert.True(t, isPromise)
}

func TestUndefinedVariableReported(t *testing.T) {
	c := New()
	f := &ast.File{
		Decls: []ast.Decl{
			&ast.VarDecl{Stmt: &ast.VarDeclStmt{
				Kind: ast.VarLet,
				Declarations: []ast.Declarator{
					{Pattern: &ast.IdentPattern{Name: "x"}, Init: &ast.Identifier{Name: "undeclared"}},
				},
			}},
		},
	}
	c.CheckFile(f)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.UndefinedVariable, c.Diags.Reports()[0].Code)
}

func TestDuplicateLetDeclarationInSameScopeReported(t *testing.T) {
	c := New()
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Kind: ast.VarLet, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "x"}, Init: &ast.Literal{Kind: ast.LitExprNumber, Value: 1.0}},
		}},
		&ast.VarDeclStmt{Kind: ast.VarLet, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "x"}, Init: &ast.Literal{Kind: ast.LitExprNumber, Value: 2.0}},
		}},
	}}
	c.checkBlockStmt(block)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.DuplicateDeclaration, c.Diags.Reports()[0].Code)
}

func TestVarRedeclarationAllowed(t *testing.T) {
	c := New()
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Kind: ast.VarVar, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "x"}, Init: &ast.Literal{Kind: ast.LitExprNumber, Value: 1.0}},
		}},
		&ast.VarDeclStmt{Kind: ast.VarVar, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "x"}, Init: &ast.Literal{Kind: ast.LitExprNumber, Value: 2.0}},
		}},
	}}
	c.checkBlockStmt(block)
	assert.False(t, c.Diags.HasErrors())
}

func TestUseAfterMoveOnHeapTypedBinding(t *testing.T) {
	c := New()
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Kind: ast.VarLet, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "a", Type: &ast.PrimitiveType{Kind: ast.PrimString}}, Init: &ast.Literal{Kind: ast.LitExprString, Value: "x"}},
		}},
		&ast.VarDeclStmt{Kind: ast.VarLet, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "b"}, Init: &ast.Identifier{Name: "a"}},
		}},
		&ast.ExprStmt{Expr: &ast.Identifier{Name: "a"}},
	}}
	c.checkBlockStmt(block)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.UseAfterMove, c.Diags.Reports()[0].Code)
}

func TestCloneLeavesSourceUsable(t *testing.T) {
	c := New()
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Kind: ast.VarLet, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "a", Type: &ast.PrimitiveType{Kind: ast.PrimString}}, Init: &ast.Literal{Kind: ast.LitExprString, Value: "x"}},
		}},
		&ast.VarDeclStmt{Kind: ast.VarLet, Declarations: []ast.Declarator{
			{Pattern: &ast.IdentPattern{Name: "b"}, Init: &ast.Clone{Expr: &ast.Identifier{Name: "a"}}},
		}},
		&ast.ExprStmt{Expr: &ast.Identifier{Name: "a"}},
	}}
	c.checkBlockStmt(block)
	assert.False(t, c.Diags.HasErrors())
}

func TestMutableBorrowConflictsWithOutstandingBorrow(t *testing.T) {
	c := New()
	c.Env.Declare("a", checkenv.VarInfo{Type: types.StringT, Ownership: checkenv.Owned, IsMutable: true, IsInitialized: true})
	c.checkExpr(&ast.Ref{Mutable: false, Expr: &ast.Identifier{Name: "a"}})
	c.checkExpr(&ast.Ref{Mutable: true, Expr: &ast.Identifier{Name: "a"}})

	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.BorrowConflict, c.Diags.Reports()[0].Code)
}

func TestAssignToImmutableReported(t *testing.T) {
	c := New()
	c.Env.Declare("x", checkenv.VarInfo{Type: types.Number, Ownership: checkenv.Owned, IsMutable: false, IsInitialized: true})
	c.checkExpr(&ast.Assignment{Op: "=", Target: &ast.Identifier{Name: "x"}, Value: &ast.Literal{Kind: ast.LitExprNumber, Value: 2.0}})

	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.AssignToImmutable, c.Diags.Reports()[0].Code)
}

func TestMemberLookupOnClass(t *testing.T) {
	c := New()
	classTy := &types.Class{
		Name:   "Point",
		Fields: []types.ObjectProperty{{Name: "x", Type: types.Number}},
	}
	c.Env.Declare("p", checkenv.VarInfo{Type: classTy, Ownership: checkenv.Owned, IsInitialized: true})

	ty := c.checkExpr(&ast.Member{Object: &ast.Identifier{Name: "p"}, Property: "x"})
	assert.Equal(t, types.Number, ty)
	assert.False(t, c.Diags.HasErrors())
}

func TestMemberLookupMissingPropertyReported(t *testing.T) {
	c := New()
	classTy := &types.Class{Name: "Point"}
	c.Env.Declare("p", checkenv.VarInfo{Type: classTy, Ownership: checkenv.Owned, IsInitialized: true})

	c.checkExpr(&ast.Member{Object: &ast.Identifier{Name: "p"}, Property: "missing"})
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.PropertyNotFound, c.Diags.Reports()[0].Code)
}

func TestCallArityMismatchReported(t *testing.T) {
	c := New()
	c.Env.Declare("f", checkenv.VarInfo{
		Type:          &types.Function{Params: []types.Type{types.Number}, Return: types.Void},
		Ownership:     checkenv.Owned,
		IsInitialized: true,
	})
	c.checkExpr(&ast.Call{Callee: &ast.Identifier{Name: "f"}})
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, errs.ArityMismatch, c.Diags.Reports()[0].Code)
}

func TestConsoleLogCallsAcceptAnyArgumentAndReturnVoid(t *testing.T) {
	c := New()
	ty := c.checkExpr(&ast.Call{
		Callee: &ast.Member{Object: &ast.Identifier{Name: "console"}, Property: "log"},
		Args:   []ast.Expr{&ast.Literal{Kind: ast.LitExprNumber, Value: 42.0}},
	})
	assert.False(t, c.Diags.HasErrors())
	assert.Equal(t, types.Void, ty)

	ty = c.checkExpr(&ast.Call{
		Callee: &ast.Member{Object: &ast.Identifier{Name: "console"}, Property: "error"},
		Args:   []ast.Expr{&ast.Literal{Kind: ast.LitExprString, Value: "oops"}},
	})
	assert.False(t, c.Diags.HasErrors())
	assert.Equal(t, types.Void, ty)
}

func TestConditionalResultUnionsBranches(t *testing.T) {
	c := New()
	ty := c.checkExpr(&ast.Conditional{
		Cond: &ast.Literal{Kind: ast.LitExprBoolean, Value: true},
		Then: &ast.Literal{Kind: ast.LitExprNumber, Value: 1.0},
		Else: &ast.Literal{Kind: ast.LitExprString, Value: "x"},
	})
	union, ok := ty.(*types.Union)
	require.True(t, ok)
	assert.Len(t, union.Members, 2)
}
